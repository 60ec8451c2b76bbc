package surveyresponses

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/Fkenogo/brand-health-analytics-banks/pkg/survey/types"
)

const (
	fileNameSep    = "##"
	fileNameMarker = "responses"
	fileDateLayout = "2006-01-02"
)

// ResponseSource streams stored responses, see ResponseDBService.FindAndExecuteOnResponses.
type ResponseSource interface {
	FindAndExecuteOnResponses(ctx context.Context, filter bson.M, returnOnError bool, fn func(r types.SurveyResponse) error) error
}

type FileExportTask struct {
	Name   string
	Filter bson.M
	Format string
}

func ExportFileName(date time.Time, taskName string, format string) string {
	return strings.Join([]string{date.Format(fileDateLayout), fileNameMarker, taskName}, fileNameSep) + "." + format
}

// exportDateFromFileName returns the date of a file named by ExportFileName.
func exportDateFromFileName(name string) (time.Time, bool) {
	parts := strings.Split(name, fileNameSep)
	if len(parts) != 3 || parts[1] != fileNameMarker {
		return time.Time{}, false
	}
	date, err := time.Parse(fileDateLayout, parts[0])
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}

func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			slog.Warn("could not stat file", slog.String("path", filename), slog.String("error", err.Error()))
		}
		return false
	}
	return !info.IsDir()
}

// WriteExportFile streams the task's responses into a dated file under exportPath and returns
// its path and the number of written responses. CSV needs the column union first, so the source
// is read twice. An existing file of the same day is kept unless overrideOld is set.
func WriteExportFile(
	ctx context.Context,
	src ResponseSource,
	def types.SurveyDefinition,
	task FileExportTask,
	exportPath string,
	overrideOld bool,
	now time.Time,
) (string, int, error) {
	target := filepath.Join(exportPath, ExportFileName(now, task.Name, task.Format))
	if fileExists(target) && !overrideOld {
		slog.Info("export file already exists, skipping", slog.String("path", target))
		return target, 0, nil
	}
	if task.Filter == nil {
		task.Filter = bson.M{}
	}

	columns := []string{}
	if task.Format == EXPORT_FORMAT_CSV {
		cc := NewColumnCollectorForDefinition(def)
		if err := src.FindAndExecuteOnResponses(ctx, task.Filter, true, func(r types.SurveyResponse) error {
			cc.Add(r)
			return nil
		}); err != nil {
			return "", 0, fmt.Errorf("collecting columns: %w", err)
		}
		columns = cc.Columns()
	}

	// a failed run must not leave a partial export behind
	tmpFile, err := os.CreateTemp(exportPath, ".export-*")
	if err != nil {
		return "", 0, err
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)
	defer tmpFile.Close()

	re, err := NewResponseExporter(tmpFile, task.Format, columns)
	if err != nil {
		return "", 0, err
	}
	if err := re.Init(); err != nil {
		return "", 0, err
	}
	if err := src.FindAndExecuteOnResponses(ctx, task.Filter, true, re.WriteResponse); err != nil {
		return "", 0, fmt.Errorf("writing responses: %w", err)
	}
	if err := re.Finish(); err != nil {
		return "", 0, err
	}
	if err := tmpFile.Close(); err != nil {
		return "", 0, err
	}

	if err := os.Rename(tmpPath, target); err != nil {
		return "", 0, err
	}
	return target, re.Count(), nil
}

// CleanUpOldExports removes export files dated more than retentionDays before now. Other files
// in the folder are left alone.
func CleanUpOldExports(exportPath string, retentionDays int, now time.Time) int {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	cutoff := today.AddDate(0, 0, -retentionDays)

	removed := 0
	if err := filepath.Walk(exportPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		date, ok := exportDateFromFileName(info.Name())
		if !ok || !date.Before(cutoff) {
			return nil
		}

		if err := os.Remove(path); err != nil {
			slog.Error("Failed to remove old export", slog.String("path", path), slog.String("error", err.Error()))
			return nil
		}
		removed++
		return nil
	}); err != nil {
		slog.Error("Error cleaning up old exports", slog.String("error", err.Error()))
	}
	return removed
}
