package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"gridbook/internal/logging"
	"gridbook/internal/netutil"
	"gridbook/pkg/openf1"
	"gridbook/pkg/reporting"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Print the drivers roster as a terminal table",
	Long:  `Preview fetches the same roster the report uses and prints it to stdout, without touching the headshot cache or writing any file`,
	Run: func(cmd *cobra.Command, args []string) {
		runPreview(cmd)
	},
}

func runPreview(cmd *cobra.Command) {
	logging.Init(logging.Config{
		Format:    "auto",
		Level:     "info",
		Component: "gridbook",
	})

	cfg, err := loadConfig(cmd)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Format:    cfg.LogFormat,
		Level:     cfg.LogLevel,
		Component: "gridbook",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := openf1.NewClient(openf1.ClientConfig{
		BaseURL: cfg.SourceURL,
		Timeout: cfg.Timeout(),
	}, netutil.NewClient(cfg.Timeout()))

	drivers, err := fetchRoster(ctx, cmd, client)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to fetch drivers roster")
	}

	rows := reporting.NewBuilder(nil).BuildAll(ctx, drivers)
	fmt.Println(renderRoster(rows))
}

// renderRoster lays the shared column schema out as a terminal table. The
// driver number column is right-aligned; everything else stays left.
func renderRoster(rows []reporting.Row) string {
	columns := reporting.Columns()

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(columns))
	for i, col := range columns {
		header[i] = col.Header
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, len(columns))
		for i := range columns {
			if i < len(row.Cells) {
				r[i] = row.Cells[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, len(columns))
	for i, col := range columns {
		align := text.AlignLeft
		if col.Header == "Driver #" {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}
