package main

import (
	"context"
	"log/slog"
	"time"

	responsesDB "github.com/Fkenogo/brand-health-analytics-banks/pkg/db/responses"
	surveyresponses "github.com/Fkenogo/brand-health-analytics-banks/pkg/exporter/survey-responses"
)

func main() {
	slog.Info("Starting response export job")
	start := time.Now()

	ctx := context.Background()
	for _, task := range conf.ResponseExports.ExportTasks {
		path, count, err := surveyresponses.WriteExportFile(
			ctx,
			responseDBService,
			surveyDefinition,
			surveyresponses.FileExportTask{
				Name:   task.Name,
				Filter: responsesDB.CountryFilter(task.Country),
				Format: task.ExportFormat,
			},
			conf.ExportPath,
			conf.ResponseExports.OverrideOld,
			start,
		)
		if err != nil {
			slog.Error("export task failed", slog.String("task", task.Name), slog.String("error", err.Error()))
			continue
		}
		slog.Info("export task finished", slog.String("task", task.Name), slog.String("path", path), slog.Int("count", count))
	}

	removed := surveyresponses.CleanUpOldExports(conf.ExportPath, conf.ResponseExports.RetentionDays, start)
	slog.Info("removed old exports", slog.Int("count", removed))

	if err := responseDBService.DBClient.Disconnect(ctx); err != nil {
		slog.Error("Error closing DB connection", slog.String("error", err.Error()))
	}
	slog.Info("Response export job completed", slog.String("duration", time.Since(start).String()))
}
