package pdf

import (
	"fmt"
	"io"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Rasterizer turns a self-contained HTML document into PDF bytes.
// Handlers depend on this interface so tests can swap in a fake.
type Rasterizer interface {
	RasterizeHTML(htmlContent string) ([]byte, error)
}

// RodRasterizer renders through a headless Chromium instance.
type RodRasterizer struct{}

func (RodRasterizer) RasterizeHTML(htmlContent string) ([]byte, error) {
	return GeneratePDFFromHTML(htmlContent)
}

// A4 paper size and the fixed print margin, in inches. Exports always use
// 0.4in margins; resume typography only adjusts spacing inside the page.
const (
	paperWidthIn  = 8.27
	paperHeightIn = 11.69
	pageMarginIn  = 0.4
)

// printOptions builds the Chromium print call: A4 paper with 0.4in margins
// on every edge. The document CSS declares the same @page margin, so the
// output is identical whether Chromium honors the CSS page rule or not.
func printOptions() *proto.PagePrintToPDF {
	width := paperWidthIn
	height := paperHeightIn
	margin := pageMarginIn
	return &proto.PagePrintToPDF{
		PrintBackground:   true,
		PreferCSSPageSize: true,
		PaperWidth:        &width,
		PaperHeight:       &height,
		MarginTop:         &margin,
		MarginBottom:      &margin,
		MarginLeft:        &margin,
		MarginRight:       &margin,
	}
}

// GeneratePDFFromHTML renders the document in a headless browser and returns
// the PDF bytes. The browser is launched per call and always torn down,
// whether rendering succeeded or not.
func GeneratePDFFromHTML(htmlContent string) ([]byte, error) {
	launch := launcher.New().
		Headless(true).
		NoSandbox(true)

	if path, ok := launcher.LookPath(); ok {
		launch = launch.Bin(path)
	}

	browserURL, err := launch.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch chromium: %w", err)
	}
	defer launch.Cleanup()

	browser := rod.New().ControlURL(browserURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}
	defer func() {
		_ = browser.Close()
	}()

	page, err := browser.Timeout(30 * time.Second).Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}
	defer func() {
		_ = page.Close()
	}()

	page = page.Timeout(30 * time.Second)
	if err := page.SetDocumentContent(htmlContent); err != nil {
		return nil, fmt.Errorf("set document content: %w", err)
	}

	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("wait load: %w", err)
	}

	reader, err := page.PDF(printOptions())
	if err != nil {
		return nil, fmt.Errorf("export pdf: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read pdf bytes: %w", err)
	}

	return data, nil
}
