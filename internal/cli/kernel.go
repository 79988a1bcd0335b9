package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	kernelSize int
	kernelExpr string
)

var kernelCmd = &cobra.Command{
	Use:   "kernel",
	Short: "구조 요소(커널) 미리보기",
	Long: `--size와 --expr로 만든 커널 마스크를 표시합니다.

수식에서 사용할 수 있는 변수:
  x, y     중심으로부터의 오프셋
  w, h     커널 크기
  rx, ry   w/2, h/2

함수: abs, min, max

예시:
  bmpmorph kernel --size 5
  bmpmorph kernel --size 5 --expr "x*x + y*y <= rx*rx"
  bmpmorph kernel --size 7 --expr "abs(x) + abs(y) <= rx"`,
	RunE: runKernel,
}

func init() {
	kernelCmd.Flags().IntVarP(&kernelSize, "size", "s", 3, "커널 크기")
	kernelCmd.Flags().StringVarP(&kernelExpr, "expr", "e", "", "커널 모양 수식 (기본: 정사각형)")

	rootCmd.AddCommand(kernelCmd)
}

func runKernel(cmd *cobra.Command, args []string) error {
	k, err := buildKernel(kernelSize, kernelExpr)
	if err != nil {
		return fmt.Errorf("커널 생성 실패: %w", err)
	}
	defer k.Release()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%dx%d, 활성 셀 %d\n", k.Width, k.Height, k.Active())
	fmt.Fprint(out, k.String())
	return nil
}
