package cli

import (
	"bytes"
	"fmt"

	"github.com/roboco-io/bmpmorph/internal/bitmap"
	"github.com/spf13/cobra"
	xbmp "golang.org/x/image/bmp"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <file>",
	Short: "내장 디코더와 golang.org/x/image/bmp 결과 비교",
	Long: `BMP 파일을 내장 코덱과 golang.org/x/image/bmp 두 디코더로 읽어
모든 픽셀이 일치하는지 확인합니다. 내장 코덱으로 다시 인코딩한 결과가
원본 바이트와 같은지도 함께 확인합니다.

예시:
  bmpmorph verify scan.bmp`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

// verifyResult summarises a verification run.
type verifyResult struct {
	Pixels     int
	Mismatches int
	RoundTrip  bool
}

func verifyBitmap(data []byte) (*verifyResult, error) {
	img, err := bitmap.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("내장 디코더: %w", err)
	}
	defer img.Release()

	ref, err := xbmp.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("x/image/bmp 디코더: %w", err)
	}

	res := &verifyResult{Pixels: len(img.Pixels)}
	bounds := ref.Bounds()
	if bounds.Dx() != img.Width() || bounds.Dy() != img.Height() {
		return nil, fmt.Errorf("크기 불일치: %dx%d != %dx%d", img.Width(), img.Height(), bounds.Dx(), bounds.Dy())
	}

	for y := 0; y < img.Height(); y++ {
		for x := 0; x < img.Width(); x++ {
			r, g, b, _ := ref.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			p := img.At(x, y)
			if uint8(r>>8) != p.R || uint8(g>>8) != p.G || uint8(b>>8) != p.B {
				res.Mismatches++
			}
		}
	}

	encoded, err := bitmap.Encode(img)
	if err != nil {
		return nil, fmt.Errorf("재인코딩: %w", err)
	}
	// 파일 끝의 추가 바이트는 비교하지 않음
	res.RoundTrip = len(data) >= len(encoded) && bytes.Equal(data[:len(encoded)], encoded)

	return res, nil
}

func runVerify(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	data, err := bitmap.ReadRaw(inputPath)
	if err != nil {
		return fmt.Errorf("파일 읽기 실패: %w", err)
	}

	res, err := verifyBitmap(data)
	if err != nil {
		return fmt.Errorf("검증 실패: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "픽셀: %d, 불일치: %d\n", res.Pixels, res.Mismatches)
	if res.RoundTrip {
		fmt.Fprintln(out, "재인코딩: 원본과 동일")
	} else {
		fmt.Fprintln(out, "재인코딩: 원본과 다름")
	}

	if res.Mismatches > 0 || !res.RoundTrip {
		return fmt.Errorf("검증 실패: %s", inputPath)
	}
	return nil
}
