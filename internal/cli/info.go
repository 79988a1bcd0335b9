package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/roboco-io/bmpmorph/internal/bitmap"
	"github.com/spf13/cobra"
)

var (
	infoFormat      string
	infoPrettyPrint bool
)

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "BMP 헤더 정보 표시",
	Long: `BMP 파일의 파일 헤더와 이미지 헤더를 읽어 표시합니다.

출력 형식은 텍스트(기본) 또는 JSON을 지원합니다.

예시:
  bmpmorph info scan.bmp
  bmpmorph info scan.bmp --format json
  bmpmorph info scan.bmp.zst`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	infoCmd.Flags().StringVarP(&infoFormat, "format", "f", "text", "출력 형식 (text, json)")
	infoCmd.Flags().BoolVar(&infoPrettyPrint, "pretty", true, "JSON 들여쓰기 적용")

	rootCmd.AddCommand(infoCmd)
}

// imageInfo is the serialisable summary of a bitmap.
type imageInfo struct {
	Path            string `json:"path"`
	Compressed      bool   `json:"compressed"`
	Signature       string `json:"signature"`
	FileSize        uint32 `json:"file_size"`
	ImageDataOffset uint32 `json:"image_data_offset"`
	HeaderSize      uint32 `json:"header_size"`
	Width           int32  `json:"width"`
	Height          int32  `json:"height"`
	Planes          uint16 `json:"planes"`
	BitsPerPixel    uint16 `json:"bits_per_pixel"`
	ImageSize       uint32 `json:"image_size"`
	XPixelsPerMeter int32  `json:"x_pixels_per_meter"`
	YPixelsPerMeter int32  `json:"y_pixels_per_meter"`
	RowPadding      int    `json:"row_padding"`
}

func newImageInfo(path string, img *bitmap.Image) imageInfo {
	fh, ih := img.FileHeader, img.ImageHeader
	return imageInfo{
		Path:            path,
		Compressed:      bitmap.IsCompressedPath(path),
		Signature:       string(fh.Signature[:]),
		FileSize:        fh.FileSize,
		ImageDataOffset: fh.ImageDataOffset,
		HeaderSize:      ih.Size,
		Width:           ih.Width,
		Height:          ih.Height,
		Planes:          ih.Planes,
		BitsPerPixel:    ih.BitsPerPixel,
		ImageSize:       ih.ImageSize,
		XPixelsPerMeter: ih.XPixelsPerMeter,
		YPixelsPerMeter: ih.YPixelsPerMeter,
		RowPadding:      bitmap.RowPadding(img.Width()),
	}
}

func runInfo(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	img, err := bitmap.Load(inputPath)
	if err != nil {
		return fmt.Errorf("이미지 읽기 실패: %w", err)
	}
	defer img.Release()

	output, err := formatInfo(newImageInfo(inputPath, img), infoFormat)
	if err != nil {
		return fmt.Errorf("출력 포맷팅 실패: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), output)
	return nil
}

func formatInfo(info imageInfo, format string) (string, error) {
	switch format {
	case "json":
		var data []byte
		var err error
		if infoPrettyPrint {
			data, err = json.MarshalIndent(info, "", "  ")
		} else {
			data, err = json.Marshal(info)
		}
		if err != nil {
			return "", err
		}
		return string(data), nil

	case "text":
		return formatInfoAsText(info), nil

	default:
		return "", fmt.Errorf("지원하지 않는 출력 형식: %s", format)
	}
}

func formatInfoAsText(info imageInfo) string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "파일\t%s\n", info.Path)
	if info.Compressed {
		fmt.Fprintf(w, "압축\tzstd\n")
	}
	fmt.Fprintf(w, "시그니처\t%s\n", info.Signature)
	fmt.Fprintf(w, "파일 크기\t%d\n", info.FileSize)
	fmt.Fprintf(w, "데이터 오프셋\t%d\n", info.ImageDataOffset)
	fmt.Fprintf(w, "크기\t%dx%d\n", info.Width, info.Height)
	fmt.Fprintf(w, "비트 수\t%d\n", info.BitsPerPixel)
	fmt.Fprintf(w, "행 패딩\t%d\n", info.RowPadding)
	fmt.Fprintf(w, "해상도\t%dx%d px/m\n", info.XPixelsPerMeter, info.YPixelsPerMeter)
	w.Flush()

	return strings.TrimRight(sb.String(), "\n")
}
