package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"tokkun-notice/internal/app"
	"tokkun-notice/internal/clipboard"
	"tokkun-notice/internal/config"
	"tokkun-notice/internal/markup"
	"tokkun-notice/internal/models"
	"tokkun-notice/internal/sample"
	"tokkun-notice/internal/service"
	"tokkun-notice/internal/tui"
	"tokkun-notice/internal/utils"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

type options struct {
	decoder string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "tokkun",
		Short: "Generate LINE notices for the 新宿校 tutoring roster",
		Long: `tokkun reads the 特訓リスト sheet of a roster workbook, keeps the 新宿校
students, and renders one notification text per student.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.decoder, "decoder", "", "Sheet decoder: excelize or stream (default: SHEET_DECODER or excelize)")

	rootCmd.AddCommand(newRenderCmd(opts), newTUICmd(opts), newReportCmd(opts), newSamplesCmd())
	return rootCmd
}

// newController builds the pipeline behind a controller. Logs go to logOut so
// they never mix with command output.
func newController(opts *options, logOut io.Writer) (*app.Controller, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	name := cfg.SheetDecoder
	if opts.decoder != "" {
		name = opts.decoder
	}

	utils.GetLogger().SetOutput(logOut)
	if err := utils.SetLogLevel(cfg.LogLevel); err != nil {
		return nil, err
	}

	decoder, err := service.NewDecoder(name)
	if err != nil {
		return nil, err
	}
	importService := service.NewImportService(decoder, utils.ComponentLogger("import"))
	return app.NewController(importService, utils.ComponentLogger("controller"),
		app.LogPort{Logger: utils.ComponentLogger("view")}), nil
}

func importPath(ctx context.Context, ctrl *app.Controller, path string) (app.View, error) {
	f, err := os.Open(path)
	if err != nil {
		return app.View{}, service.FileReadError(err)
	}
	defer f.Close()

	return ctrl.Import(ctx, filepath.Base(path), f)
}

func newRenderCmd(opts *options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Print the notice text for every matching student",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := newController(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			view, err := importPath(cmd.Context(), ctrl, args[0])
			if err != nil {
				return fmt.Errorf("%s", service.BannerMessage(err))
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), view)
			}
			return writeText(cmd.OutOrStdout(), view)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the batch as JSON")
	return cmd
}

func writeText(w io.Writer, view app.View) error {
	fmt.Fprintf(w, "✅ %d名の%s生徒のテンプレートを生成しました\n", view.Batch.Len(), models.CampusToken)
	for _, item := range view.Batch.Items {
		fmt.Fprintf(w, "\n--- %d人目: %s ---\n%s\n", item.Index+1, item.DisplayName, item.Text)
	}
	return nil
}

func writeJSON(w io.Writer, view app.View) error {
	items := make([]models.ItemView, 0, view.Batch.Len())
	for i, item := range view.Batch.Items {
		items = append(items, models.ItemView{
			TemplateItem: item,
			Progress:     view.Progress[i],
			HTML:         markup.ItemHTML(view.Batch.ID, item, view.Progress[i]),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(models.ImportResult{
		BatchID:    view.Batch.ID,
		Filename:   view.Batch.Filename,
		TotalRows:  view.Batch.TotalRows,
		Summary:    view.Summary,
		Items:      items,
		ImportTime: view.Batch.ImportedAt,
	})
}

func newTUICmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tui FILE",
		Short: "Browse, copy and tick off notices in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := newController(opts, io.Discard)
			if err != nil {
				return err
			}

			model := tui.New(ctrl, clipboard.Probe(os.Stderr)).Open(args[0])
			p := tea.NewProgram(model, tea.WithAltScreen())
			ctrl.Attach(tui.NewPort(p))

			_, err = p.Run()
			return err
		},
	}
}

func newReportCmd(opts *options) *cobra.Command {
	var (
		outputPath string
		sent       []int
		copied     []int
	)

	cmd := &cobra.Command{
		Use:   "report FILE",
		Short: "Write a copy/send progress workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputPath == "" {
				base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
				outputPath = base + "_送信状況.xlsx"
			}

			ctrl, err := newController(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			view, err := importPath(cmd.Context(), ctrl, args[0])
			if err != nil {
				return fmt.Errorf("%s", service.BannerMessage(err))
			}

			// Row numbers on the command line are 1-based, as shown to users.
			for _, n := range copied {
				if _, _, err := ctrl.MarkCopied(view.Batch.ID, n-1); err != nil {
					return fmt.Errorf("--copied %d: %w", n, err)
				}
			}
			for _, n := range sent {
				if _, _, err := ctrl.SetSent(view.Batch.ID, n-1, true); err != nil {
					return fmt.Errorf("--sent %d: %w", n, err)
				}
			}

			view, err = ctrl.Current()
			if err != nil {
				return err
			}

			if err := service.NewExcelService().ExportProgressReport(outputPath, view.Batch, view.Progress, view.Summary); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "report written to %s (%d students, %d copied, %d sent)\n",
				outputPath, view.Summary.Total, view.Summary.Copied, view.Summary.Sent)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output workbook path (default: <input>_送信状況.xlsx)")
	cmd.Flags().IntSliceVar(&sent, "sent", nil, "Row numbers already sent on LINE")
	cmd.Flags().IntSliceVar(&copied, "copied", nil, "Row numbers already copied")
	return cmd
}

func newSamplesCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "samples",
		Short: "Write sample roster workbooks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			paths, err := sample.WriteAll(dir)
			if err != nil {
				return err
			}

			files := sample.Files()
			for i, path := range paths {
				fmt.Fprintf(cmd.OutOrStdout(), "✓ %s (%s)\n", path, files[i].Note)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", sample.DefaultDir, "Output directory")
	return cmd
}
