// Package cli implements the bmpmorph command line.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "bmpmorph",
	Short: "24비트 BMP 이미지의 이진 형태학 연산 도구",
	Long: `bmpmorph는 비압축 24비트 BMP 파일을 읽어 흑백 이진 이미지로 변환한 뒤
팽창(dilate), 침식(erode), 열림(open), 닫힘(close) 연산을 적용합니다.

결과는 원본과 같은 헤더 구조의 BMP로 저장되며, 출력 경로가 .zst로
끝나면 zstd로 압축하여 저장합니다.

예시:
  bmpmorph morph scan.bmp --op open -o clean.bmp
  bmpmorph info scan.bmp
  bmpmorph verify scan.bmp
  bmpmorph kernel --size 5 --expr "x*x + y*y <= rx*rx"`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "버전 정보 표시",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "bmpmorph %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
