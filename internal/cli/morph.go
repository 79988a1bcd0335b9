package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/roboco-io/bmpmorph/internal/bitmap"
	"github.com/roboco-io/bmpmorph/internal/config"
	"github.com/roboco-io/bmpmorph/internal/convert"
	"github.com/roboco-io/bmpmorph/internal/morphology"
	"github.com/spf13/cobra"
)

var (
	morphOutput     string
	morphOp         string
	morphKernelSize int
	morphKernelExpr string
	morphThreshold  int
	morphIterations int
	morphASCII      bool
	morphConfigPath string
	morphVerbose    bool
	morphQuiet      bool
)

var morphCmd = &cobra.Command{
	Use:   "morph <file>",
	Short: "BMP 이미지에 형태학 연산 적용",
	Long: `BMP 이미지를 흑백으로 변환한 뒤 형태학 연산을 적용하여 저장합니다.

밝기((R+G+B)/3)가 임계값 이상인 픽셀은 흰색, 나머지는 검은색이 됩니다.
플래그를 지정하지 않은 값은 설정 파일(~/.bmpmorph/config.yaml)을 따릅니다.

연산:
  dilate   팽창 - 흰 영역 확장
  erode    침식 - 흰 영역 축소
  open     팽창 후 침식
  close    침식 후 팽창

환경 변수:
  BMPMORPH_VERBOSE=true   상세 출력

예시:
  bmpmorph morph scan.bmp
  bmpmorph morph scan.bmp --op dilate --kernel-size 5 -o out.bmp
  bmpmorph morph scan.bmp --kernel-expr "x == 0 || y == 0"
  bmpmorph morph scan.bmp -o out.bmp.zst`,
	Args: cobra.ExactArgs(1),
	RunE: runMorph,
}

func init() {
	morphCmd.Flags().StringVarP(&morphOutput, "output", "o", "", "출력 파일 경로 (기본: <입력>.<연산>.bmp)")
	morphCmd.Flags().StringVar(&morphOp, "op", "", "연산 (dilate, erode, open, close)")
	morphCmd.Flags().IntVarP(&morphKernelSize, "kernel-size", "k", 0, "커널 크기")
	morphCmd.Flags().StringVar(&morphKernelExpr, "kernel-expr", "", "커널 모양 수식 (예: \"x*x + y*y <= rx*rx\")")
	morphCmd.Flags().IntVarP(&morphThreshold, "threshold", "t", 0, "흑백 변환 임계값 (0-255)")
	morphCmd.Flags().IntVarP(&morphIterations, "iterations", "n", 0, "연산 반복 횟수")
	morphCmd.Flags().BoolVar(&morphASCII, "ascii", false, "결과를 텍스트로 미리보기")
	morphCmd.Flags().StringVar(&morphConfigPath, "config", "", "설정 파일 경로")
	morphCmd.Flags().BoolVarP(&morphVerbose, "verbose", "v", false, "상세 출력")
	morphCmd.Flags().BoolVarP(&morphQuiet, "quiet", "q", false, "조용한 모드")

	rootCmd.AddCommand(morphCmd)
}

// morphSettings is the configuration after flag overrides.
type morphSettings struct {
	op         morphology.Operation
	kernelSize int
	kernelExpr string
	threshold  uint8
	iterations int
	compress   bool
	zstdLevel  int
}

func loadConfig(path string) (*config.Config, error) {
	loader, err := newConfigLoader(path)
	if err != nil {
		return nil, err
	}
	return loader.Load()
}

func resolveMorphSettings(cmd *cobra.Command, cfg *config.Config) (*morphSettings, error) {
	flags := cmd.Flags()
	if flags.Changed("op") {
		cfg.Morphology.Operation = morphOp
	}
	if flags.Changed("kernel-size") {
		cfg.Kernel.Size = morphKernelSize
	}
	if flags.Changed("kernel-expr") {
		cfg.Kernel.Expression = morphKernelExpr
	}
	if flags.Changed("threshold") {
		cfg.Conversion.Threshold = morphThreshold
	}
	if flags.Changed("iterations") {
		cfg.Morphology.Iterations = morphIterations
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	op, err := morphology.ParseOperation(cfg.Morphology.Operation)
	if err != nil {
		return nil, err
	}

	return &morphSettings{
		op:         op,
		kernelSize: cfg.Kernel.Size,
		kernelExpr: cfg.Kernel.Expression,
		threshold:  uint8(cfg.Conversion.Threshold),
		iterations: cfg.Morphology.Iterations,
		compress:   cfg.Compressed(),
		zstdLevel:  cfg.Output.ZstdLevel,
	}, nil
}

func buildKernel(size int, expr string) (*morphology.Kernel, error) {
	if strings.TrimSpace(expr) == "" {
		return morphology.Square(size)
	}
	return morphology.FromExpression(expr, size, size)
}

// defaultOutputPath derives "<dir>/<name>.<op>.bmp" from the input path.
func defaultOutputPath(input string, op morphology.Operation) string {
	base := input
	if bitmap.IsCompressedPath(base) {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return fmt.Sprintf("%s.%s.bmp", base, op)
}

func runMorph(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	verbose := !morphQuiet && (morphVerbose || config.GetEnvBool("BMPMORPH_VERBOSE"))
	stderr := cmd.ErrOrStderr()

	cfg, err := loadConfig(morphConfigPath)
	if err != nil {
		return fmt.Errorf("설정 로드 실패: %w", err)
	}
	settings, err := resolveMorphSettings(cmd, cfg)
	if err != nil {
		return fmt.Errorf("잘못된 설정: %w", err)
	}

	kernel, err := buildKernel(settings.kernelSize, settings.kernelExpr)
	if err != nil {
		return fmt.Errorf("커널 생성 실패: %w", err)
	}
	defer kernel.Release()

	img, err := bitmap.Load(inputPath)
	if err != nil {
		return fmt.Errorf("이미지 읽기 실패: %w", err)
	}
	defer img.Release()

	if verbose {
		fmt.Fprintf(stderr, "입력 파일: %s (%dx%d)\n", inputPath, img.Width(), img.Height())
		fmt.Fprintf(stderr, "연산: %s x%d, 커널: %dx%d (활성 %d)\n",
			settings.op, settings.iterations, kernel.Width, kernel.Height, kernel.Active())
	}

	bin, err := convert.Binarize(img, settings.threshold)
	if err != nil {
		return fmt.Errorf("흑백 변환 실패: %w", err)
	}
	defer bin.Release()

	before := bin.CountWhite()
	for i := 0; i < settings.iterations; i++ {
		if err := morphology.Apply(settings.op, bin, kernel); err != nil {
			return fmt.Errorf("%s 연산 실패 (%d회차): %w", settings.op, i+1, err)
		}
	}

	if verbose {
		fmt.Fprintf(stderr, "흰 픽셀: %d -> %d\n", before, bin.CountWhite())
	}

	if morphASCII {
		fmt.Fprint(cmd.OutOrStdout(), bin.String())
	}

	out, err := convert.Colorize(bin, img)
	if err != nil {
		return fmt.Errorf("이미지 변환 실패: %w", err)
	}

	outputPath := morphOutput
	if outputPath == "" {
		outputPath = defaultOutputPath(inputPath, settings.op)
	}
	if settings.compress && !bitmap.IsCompressedPath(outputPath) {
		outputPath += bitmap.CompressedExt
	}

	if err := bitmap.SaveWith(out, outputPath, bitmap.SaveOptions{ZstdLevel: settings.zstdLevel}); err != nil {
		return fmt.Errorf("파일 저장 실패: %w", err)
	}
	if !morphQuiet {
		fmt.Fprintf(stderr, "변환 완료: %s\n", outputPath)
	}

	return nil
}
