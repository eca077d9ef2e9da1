package service

import (
	"bytes"
	"image"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/Aashish23092/soil-health-scanner/client"
)

// PDFProcessor reads portal-issued PDF cards: the text layer when there is
// one, the embedded scans otherwise.
type PDFProcessor interface {
	ExtractText(pdfData []byte, password string) (string, error)
	ExtractImages(pdfData []byte, password string) ([]image.Image, error)
}

type pdfProcessor struct{}

func NewPDFProcessor() PDFProcessor {
	return &pdfProcessor{}
}

// ExtractText returns the text layer page by page, one line per text row.
// Encrypted files are decrypted with pdfcpu first.
func (p *pdfProcessor) ExtractText(pdfData []byte, password string) (string, error) {
	if password != "" {
		conf := model.NewDefaultConfiguration()
		conf.UserPW = password
		var out bytes.Buffer
		if err := api.Decrypt(bytes.NewReader(pdfData), &out, conf); err != nil {
			return "", eris.Wrap(err, "pdf: decrypt")
		}
		pdfData = out.Bytes()
	}

	r, err := pdf.NewReader(bytes.NewReader(pdfData), int64(len(pdfData)))
	if err != nil {
		return "", eris.Wrap(err, "pdf: open")
	}

	var sb strings.Builder
	for pageIndex := 1; pageIndex <= r.NumPage(); pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			zap.L().Warn("pdf: page text unavailable", zap.Int("page", pageIndex), zap.Error(err))
			continue
		}
		for _, row := range rows {
			writeRow(&sb, row.Content)
			sb.WriteByte('\n')
		}
	}
	return sb.String(), nil
}

// A horizontal gap wider than this fraction of the font size separates two
// table cells or words.
const pdfWordGap = 0.25

// writeRow joins the glyph runs of one text row, inserting a space wherever
// the runs are visibly apart.
func writeRow(sb *strings.Builder, texts []pdf.Text) {
	for i, t := range texts {
		if i > 0 {
			prev := texts[i-1]
			if t.X-(prev.X+prev.W) > pdfWordGap*t.FontSize && !strings.HasSuffix(prev.S, " ") {
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(t.S)
	}
}

// pdfcpu names extracted images <file>_<page>_<object>.<ext>.
var extractedPageRe = regexp.MustCompile(`_(\d+)_[^_]*$`)

// ExtractImages returns the images embedded in the PDF in page order.
func (p *pdfProcessor) ExtractImages(pdfData []byte, password string) ([]image.Image, error) {
	tempDir, err := os.MkdirTemp("", "soilcard-pdf-images")
	if err != nil {
		return nil, eris.Wrap(err, "pdf: create temp dir")
	}
	defer os.RemoveAll(tempDir)

	tempFile, err := os.CreateTemp("", "soilcard-*.pdf")
	if err != nil {
		return nil, eris.Wrap(err, "pdf: create temp file")
	}
	defer os.Remove(tempFile.Name())

	if _, err := tempFile.Write(pdfData); err != nil {
		tempFile.Close()
		return nil, eris.Wrap(err, "pdf: write temp file")
	}
	tempFile.Close()

	conf := model.NewDefaultConfiguration()
	if password != "" {
		conf.UserPW = password
	}
	if err := api.ExtractImagesFile(tempFile.Name(), tempDir, nil, conf); err != nil {
		return nil, eris.Wrap(err, "pdf: extract images")
	}

	files, err := os.ReadDir(tempDir)
	if err != nil {
		return nil, eris.Wrap(err, "pdf: read temp dir")
	}
	names := make([]string, 0, len(files))
	for _, f := range files {
		if !f.IsDir() {
			names = append(names, f.Name())
		}
	}
	sortByPage(names)

	var images []image.Image
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(tempDir, name))
		if err != nil {
			continue
		}
		img, err := client.DecodeImage(data)
		if err != nil {
			zap.L().Debug("pdf: skipping undecodable image", zap.String("file", name), zap.Error(err))
			continue
		}
		images = append(images, img)
	}
	return images, nil
}

func sortByPage(names []string) {
	page := func(name string) int {
		m := extractedPageRe.FindStringSubmatch(strings.TrimSuffix(name, filepath.Ext(name)))
		if m == nil {
			return 0
		}
		n, _ := strconv.Atoi(m[1])
		return n
	}
	sort.SliceStable(names, func(i, j int) bool {
		pi, pj := page(names[i]), page(names[j])
		if pi != pj {
			return pi < pj
		}
		return names[i] < names[j]
	})
}
