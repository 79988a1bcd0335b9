package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/roboco-io/bmpmorph/internal/config"
	"github.com/roboco-io/bmpmorph/internal/morphology"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// configEnvVar overrides the configuration file location.
const configEnvVar = "BMPMORPH_CONFIG"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "설정 관리",
	Long: `bmpmorph 설정을 관리합니다.

설정 파일 위치: ~/.bmpmorph/config.yaml (BMPMORPH_CONFIG로 변경 가능)

하위 명령:
  show    현재 설정 표시
  init    기본 설정 파일 생성
  set     설정 값 변경
  path    설정 파일 경로 표시`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "현재 설정 표시",
	Long: `현재 적용된 설정을 표시합니다.

설정 파일이 없으면 기본값이 표시됩니다.`,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "기본 설정 파일 생성",
	Long: `기본 설정 파일을 생성합니다.

이미 설정 파일이 있는 경우 오류가 발생합니다.
기존 파일을 덮어쓰려면 --force 플래그를 사용하세요.`,
	RunE: runConfigInit,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "설정 값 변경",
	Long: `설정 값을 변경합니다.

지원하는 키:
  morphology.operation   기본 연산 (dilate, erode, open, close)
  morphology.iterations  반복 횟수 (1 이상)
  kernel.size            커널 크기 (0-255)
  kernel.expression      커널 모양 수식 (빈 문자열이면 정사각형)
  conversion.threshold   흑백 변환 임계값 (0-255)
  output.compression     출력 압축 (none, zstd)
  output.zstd_level      zstd 압축 레벨 (1-4)

예시:
  bmpmorph config set morphology.operation close
  bmpmorph config set kernel.expression "x*x + y*y <= rx*rx"`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "설정 파일 경로 표시",
	Run: func(cmd *cobra.Command, args []string) {
		loader, err := newConfigLoader("")
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "오류: %v\n", err)
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), loader.ConfigPath())
	},
}

var configForce bool

func init() {
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "기존 설정 파일 덮어쓰기")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)

	rootCmd.AddCommand(configCmd)
}

// newConfigLoader returns a loader for path, $BMPMORPH_CONFIG, or the
// default location, in that order.
func newConfigLoader(path string) (*config.Loader, error) {
	if path == "" {
		path = config.GetEnvOrDefault(configEnvVar, "")
	}
	if path != "" {
		return config.NewLoaderWithPath(path), nil
	}
	return config.NewLoader()
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	loader, err := newConfigLoader("")
	if err != nil {
		return fmt.Errorf("설정 로더 초기화 실패: %w", err)
	}

	cfg, err := loader.LoadRaw()
	if err != nil {
		return fmt.Errorf("설정 로드 실패: %w", err)
	}

	out := cmd.OutOrStdout()
	if loader.Exists() {
		fmt.Fprintf(out, "설정 파일: %s\n\n", loader.ConfigPath())
	} else {
		fmt.Fprintf(out, "설정 파일: (기본값 사용)\n\n")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("설정 출력 실패: %w", err)
	}

	fmt.Fprintln(out, string(data))

	fmt.Fprintln(out, "환경 변수:")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	envVars := []struct {
		key   string
		desc  string
		value string
	}{
		{configEnvVar, "설정 파일 경로", os.Getenv(configEnvVar)},
		{"BMPMORPH_VERBOSE", "상세 출력", os.Getenv("BMPMORPH_VERBOSE")},
	}

	for _, ev := range envVars {
		status := "(미설정)"
		if ev.value != "" {
			status = ev.value
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\n", ev.key, ev.desc, status)
	}
	w.Flush()

	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	loader, err := newConfigLoader("")
	if err != nil {
		return fmt.Errorf("설정 로더 초기화 실패: %w", err)
	}

	if err := loader.Init(configForce); err != nil {
		if errors.Is(err, config.ErrConfigExists) {
			return fmt.Errorf("설정 파일이 이미 존재합니다: %s\n덮어쓰려면 --force 플래그를 사용하세요", loader.ConfigPath())
		}
		return fmt.Errorf("설정 파일 생성 실패: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "설정 파일 생성됨: %s\n", loader.ConfigPath())
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	loader, err := newConfigLoader("")
	if err != nil {
		return fmt.Errorf("설정 로더 초기화 실패: %w", err)
	}

	cfg, err := loader.LoadRaw()
	if err != nil {
		return fmt.Errorf("설정 로드 실패: %w", err)
	}

	if err := setConfigValue(cfg, key, value); err != nil {
		return err
	}

	if err := loader.Save(cfg); err != nil {
		return fmt.Errorf("설정 저장 실패: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "설정 변경됨: %s = %s\n", key, value)
	return nil
}

func setConfigValue(cfg *config.Config, key, value string) error {
	switch key {
	case "morphology.operation":
		op, err := morphology.ParseOperation(value)
		if err != nil {
			return fmt.Errorf("유효하지 않은 연산: %s (지원: %s)", value, strings.Join(operationNames(), ", "))
		}
		cfg.Morphology.Operation = op.String()

	case "morphology.iterations":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("유효하지 않은 반복 횟수: %s", value)
		}
		cfg.Morphology.Iterations = n

	case "kernel.size":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("유효하지 않은 커널 크기: %s", value)
		}
		cfg.Kernel.Size = n

	case "kernel.expression":
		if value != "" {
			if _, err := morphology.FromExpression(value, 1, 1); err != nil {
				return fmt.Errorf("유효하지 않은 수식: %w", err)
			}
		}
		cfg.Kernel.Expression = value

	case "conversion.threshold":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("유효하지 않은 임계값: %s", value)
		}
		cfg.Conversion.Threshold = n

	case "output.compression":
		valid := []string{"none", "zstd"}
		if !contains(valid, value) {
			return fmt.Errorf("유효하지 않은 압축 방식: %s (지원: %s)", value, strings.Join(valid, ", "))
		}
		cfg.Output.Compression = value

	case "output.zstd_level":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("유효하지 않은 압축 레벨: %s", value)
		}
		cfg.Output.ZstdLevel = n

	default:
		return fmt.Errorf("알 수 없는 설정 키: %s", key)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("유효하지 않은 값: %w", err)
	}
	return nil
}

func operationNames() []string {
	var names []string
	for _, op := range morphology.Operations() {
		names = append(names, op.String())
	}
	return names
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
