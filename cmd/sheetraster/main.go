// Command sheetraster renders a worksheet from an .xlsx file to PNG,
// serves a render-on-demand HTTP preview, or lets the user pick a
// worksheet interactively.
package main

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"

	humanize "github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"

	"sheetraster"
	"sheetraster/internal/config"
	"sheetraster/internal/previewserver"
	"sheetraster/internal/tui"
	"sheetraster/internal/xlsxsource"
)

// writePNG encodes img as PNG and writes it to path, logging the
// output's human-readable size.
func writePNG(path string, img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return err
	}
	log.Printf("wrote %s (%s)", path, humanize.Bytes(uint64(buf.Len())))
	return nil
}

func main() {
	app := &cli.App{
		Name:  "sheetraster",
		Usage: "render a spreadsheet worksheet to a raster image",
		Commands: []*cli.Command{
			renderCommand(),
			serveCommand(),
			pickCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func loadOptions(c *cli.Context) (config.Options, error) {
	opts, err := config.Load()
	if err != nil {
		return config.Options{}, fmt.Errorf("loading config: %w", err)
	}
	if scale := c.Float64("scale"); scale > 0 {
		opts.DPI = opts.DPI * scale
	}
	return opts, nil
}

func renderCommand() *cli.Command {
	return &cli.Command{
		Name:      "render",
		Usage:     "render a worksheet to a PNG file",
		ArgsUsage: "<input.xlsx> <output.png>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "sheet", Usage: "worksheet name or 1-based index; default worksheet if unset"},
			&cli.Float64Flag{Name: "scale", Usage: "multiply the configured DPI by this factor"},
			&cli.Float64Flag{Name: "display-scale", Usage: "display scale for the returned presentation size, layered on top of the fixed raster buffer"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return cli.Exit("usage: sheetraster render <input.xlsx> <output.png>", 1)
			}
			inputPath, outputPath := c.Args().Get(0), c.Args().Get(1)

			opts, err := loadOptions(c)
			if err != nil {
				return err
			}

			wb, err := xlsxsource.Open(inputPath)
			if err != nil {
				return err
			}
			defer wb.Close()

			renderer, err := sheetraster.NewRenderer()
			if err != nil {
				return err
			}

			sel := sheetSelectorFromFlag(c.String("sheet"))
			result, err := renderer.Render(wb, sel, opts, c.Float64("display-scale"))
			if err != nil {
				return fmt.Errorf("rendering %s: %w", inputPath, err)
			}
			if result.HasPresentationSize {
				log.Printf("presentation size %vx%v", result.PresentationWidth, result.PresentationHeight)
			}

			return writePNG(outputPath, result.Image)
		},
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "serve a render-on-demand HTTP preview endpoint",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Value: ":8080", Usage: "listen address"},
		},
		Action: func(c *cli.Context) error {
			opts, err := loadOptions(c)
			if err != nil {
				return err
			}
			renderer, err := sheetraster.NewRenderer()
			if err != nil {
				return err
			}
			srv := previewserver.New(renderer, opts)
			return srv.ListenAndServe(c.String("addr"))
		},
	}
}

func pickCommand() *cli.Command {
	return &cli.Command{
		Name:      "pick",
		Usage:     "interactively pick a worksheet and render it to PNG",
		ArgsUsage: "<input.xlsx> <output.png>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return cli.Exit("usage: sheetraster pick <input.xlsx> <output.png>", 1)
			}
			inputPath, outputPath := c.Args().Get(0), c.Args().Get(1)

			wb, err := xlsxsource.Open(inputPath)
			if err != nil {
				return err
			}
			defer wb.Close()

			var summaries []tui.SheetSummary
			for i := 1; i <= wb.WorksheetCount(); i++ {
				ws, ok := wb.WorksheetByIndex(i)
				if !ok {
					continue
				}
				name, _ := wb.SheetName(i)
				summaries = append(summaries, tui.SheetSummary{
					Index: i,
					Name:  name,
					Rows:  ws.RowCount(),
					Cols:  ws.ColumnCount(),
				})
			}

			result, err := tui.Run(summaries)
			if err != nil {
				return err
			}
			if result.Cancelled {
				log.Println("cancelled")
				return nil
			}

			opts, err := loadOptions(c)
			if err != nil {
				return err
			}
			renderer, err := sheetraster.NewRenderer()
			if err != nil {
				return err
			}
			rendered, err := renderer.Render(wb, sheetraster.ByIndexSelector(result.Index), opts, 0)
			if err != nil {
				return err
			}

			return writePNG(outputPath, rendered.Image)
		},
	}
}

func sheetSelectorFromFlag(sheet string) sheetraster.SheetSelector {
	if sheet == "" {
		return sheetraster.SheetSelector{}
	}
	var index int
	if n, err := fmt.Sscanf(sheet, "%d", &index); err == nil && n == 1 {
		return sheetraster.ByIndexSelector(index)
	}
	return sheetraster.ByNameSelector(sheet)
}
