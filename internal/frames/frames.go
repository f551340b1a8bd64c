package frames

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nick-ma/2026-calendar/internal/calendar"
	"github.com/nick-ma/2026-calendar/internal/config"
	"github.com/nick-ma/2026-calendar/internal/logging"
	"github.com/nick-ma/2026-calendar/internal/services"
	"github.com/nick-ma/2026-calendar/internal/textutil"
)

// Main text switches to the CJK font once ideographs pass this share.
const hanThreshold = 0.3

// Options describes one frame rendering batch. FromConfig seeds canvas and
// asset fields; the command layer fills in the manifest and output paths.
type Options struct {
	CSVPath string
	OutDir  string

	BackgroundPath string
	FontCN         string
	FontEN         string
	FontIndexCN    int
	FontIndexEN    int

	Width  int
	Height int
}

// FromConfig seeds rendering options from the loaded configuration.
func FromConfig(cfg *config.Config) Options {
	return Options{
		BackgroundPath: cfg.Frames.Background,
		FontCN:         cfg.Frames.FontCN,
		FontEN:         cfg.Frames.FontEN,
		FontIndexCN:    cfg.Frames.FontIndexCN,
		FontIndexEN:    cfg.Frames.FontIndexEN,
		Width:          cfg.Frames.Width,
		Height:         cfg.Frames.Height,
	}
}

// Validate checks the batch before any asset loads.
func (o Options) Validate() error {
	required := []struct {
		value string
		name  string
	}{
		{o.CSVPath, "manifest path"},
		{o.OutDir, "output directory"},
		{o.BackgroundPath, "background image path"},
		{o.FontCN, "CJK font path"},
		{o.FontEN, "Latin font path"},
	}
	for _, req := range required {
		if req.value == "" {
			return services.Wrap(services.ErrConfiguration, "frames", "validate", req.name+" is required", nil)
		}
	}
	if o.Width <= 0 || o.Height <= 0 {
		return services.Wrap(services.ErrValidation, "frames", "validate",
			fmt.Sprintf("canvas %dx%d must be positive", o.Width, o.Height), nil)
	}
	if o.FontIndexCN < 0 || o.FontIndexEN < 0 {
		return services.Wrap(services.ErrValidation, "frames", "validate", "font index must not be negative", nil)
	}
	return nil
}

// Renderer draws calendar frames from a CSV manifest.
type Renderer struct {
	opts   Options
	logger *slog.Logger
}

func New(opts Options, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Renderer{opts: opts, logger: logger}
}

// assets are the per-batch resources loaded once and reused for every row.
type assets struct {
	background image.Image
	fontCN     *Font
	fontEN     *Font
}

// Run renders one frame per manifest row into the output directory as
// <date>.png. The context is checked between rows so interruption stops the
// batch at a row boundary.
func (r *Renderer) Run(ctx context.Context) error {
	if err := r.opts.Validate(); err != nil {
		return err
	}

	records, err := calendar.Load(r.opts.CSVPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return services.Wrap(services.ErrNotFound, "frames", "load manifest", r.opts.CSVPath, err)
		}
		return services.Wrap(services.ErrValidation, "frames", "load manifest", "", err)
	}

	a, err := r.loadAssets()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(r.opts.OutDir, 0o755); err != nil {
		return services.Wrap(services.ErrEnvironment, "frames", "create output directory", r.opts.OutDir, err)
	}

	r.logger.Info("rendering frames",
		logging.Int("rows", len(records)),
		logging.String("out_dir", r.opts.OutDir),
	)
	started := time.Now()

	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("rendering interrupted: %w", err)
		}
		date := rec.Get(calendar.ColDate)
		if date == "" {
			return services.Wrap(services.ErrValidation, "frames", "render",
				fmt.Sprintf("row %d missing %q value", i+1, calendar.ColDate), nil)
		}
		dc, err := r.renderFrame(a, rec)
		if err != nil {
			return services.Wrap(services.ErrValidation, "frames", "render",
				fmt.Sprintf("row %d (%s)", i+1, date), err)
		}
		name := textutil.SanitizeFileName(date) + ".png"
		path := filepath.Join(r.opts.OutDir, name)
		if err := dc.SavePNG(path); err != nil {
			return services.Wrap(services.ErrEnvironment, "frames", "save frame", path, err)
		}
		r.logger.Info("frame rendered",
			logging.Int("index", i+1),
			logging.Int("total", len(records)),
			logging.String("file", name),
		)
	}

	r.logger.Info("frames complete",
		logging.Int("count", len(records)),
		logging.Duration("elapsed", time.Since(started)),
	)
	return nil
}

// loadAssets opens the background and fonts, classifying missing files as
// input errors and parse failures as validation errors.
func (r *Renderer) loadAssets() (*assets, error) {
	bg, err := imaging.Open(r.opts.BackgroundPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, services.Wrap(services.ErrNotFound, "frames", "load background", r.opts.BackgroundPath, err)
		}
		return nil, services.Wrap(services.ErrValidation, "frames", "load background", r.opts.BackgroundPath, err)
	}
	// Stretched to the canvas without preserving aspect; the artwork is
	// produced at the canvas ratio.
	background := imaging.Resize(bg, r.opts.Width, r.opts.Height, imaging.Lanczos)

	fontCN, err := LoadFont(r.opts.FontCN, r.opts.FontIndexCN)
	if err != nil {
		return nil, wrapFontError("CJK font", err)
	}
	fontEN, err := LoadFont(r.opts.FontEN, r.opts.FontIndexEN)
	if err != nil {
		return nil, wrapFontError("Latin font", err)
	}
	return &assets{background: background, fontCN: fontCN, fontEN: fontEN}, nil
}

func wrapFontError(name string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return services.Wrap(services.ErrNotFound, "frames", "load fonts", name, err)
	}
	return services.Wrap(services.ErrValidation, "frames", "load fonts", name, err)
}

// renderFrame draws one manifest row onto a fresh copy of the background.
func (r *Renderer) renderFrame(a *assets, rec calendar.Record) (*gg.Context, error) {
	dc := gg.NewContextForImage(a.background)

	if day := rec.Get(calendar.ColDay); day != "" {
		face, err := a.fontEN.Face(sizeDayBig)
		if err != nil {
			return nil, err
		}
		drawLines(dc, face, boxDayBig, []string{day}, colorHeader, alignCenter, 0)
	}

	if month := rec.Get(calendar.ColMonthCN); month != "" {
		face, err := a.fontCN.Face(sizeMonthCN)
		if err != nil {
			return nil, err
		}
		drawLines(dc, face, boxMonthCN, []string{month}, colorHeader, alignRight, 10)
	}
	if month := rec.Get(calendar.ColMonthEN); month != "" {
		face, err := a.fontEN.Face(sizeMonthEN)
		if err != nil {
			return nil, err
		}
		drawLines(dc, face, boxMonthEN, []string{month}, colorHeader, alignRight, 10)
	}

	if weekday := weekdayLine(rec); weekday != "" {
		face, err := a.fontCN.Face(sizeDetail)
		if err != nil {
			return nil, err
		}
		drawLines(dc, face, boxWeekday, []string{weekday}, colorHeader, alignRight, 10)
	}

	if lunar := lunarLine(rec); lunar != "" {
		face, err := a.fontCN.Face(sizeDetail)
		if err != nil {
			return nil, err
		}
		drawLines(dc, face, boxLunar, []string{lunar}, colorHeader, alignRight, 10)
	}

	if text := rec.Get(calendar.ColMainText); text != "" {
		src := a.fontEN
		if textutil.HanRatio(text) > hanThreshold {
			src = a.fontCN
		}
		face, lines, err := fitText(src, text, boxMainText.w, boxMainText.h)
		if err != nil {
			return nil, err
		}
		drawLines(dc, face, boxMainText, lines, colorText, alignLeft, fitSpacing)
	}

	if footer := rec.Get(calendar.ColFooter); footer != "" {
		face, err := a.fontCN.Face(sizeDetail)
		if err != nil {
			return nil, err
		}
		drawLines(dc, face, boxFooter, []string{footer}, colorHeader, alignCenter, 10)
	}

	return dc, nil
}

// weekdayLine prefers the Chinese weekday; the English value is normalized
// to title case when it stands in.
func weekdayLine(rec calendar.Record) string {
	if cn := rec.Get(calendar.ColWeekdayCN); cn != "" {
		return cn
	}
	en := rec.Get(calendar.ColWeekdayEN)
	if en == "" {
		return ""
	}
	return cases.Title(language.English).String(en)
}

// lunarLine prefixes the lunar date with 农历 and appends the solar term
// behind a separator dot when present.
func lunarLine(rec calendar.Record) string {
	line := ""
	if lunar := rec.Get(calendar.ColLunar); lunar != "" {
		line = "农历 " + lunar
	}
	if solar := rec.Get(calendar.ColSolarTerm); solar != "" {
		if line != "" {
			return line + " · " + solar
		}
		return solar
	}
	return line
}
