package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ondrovic/survey-test-form-sub004/pkg/aggregation"
	aggregationExporter "github.com/ondrovic/survey-test-form-sub004/pkg/exporter/aggregations"
)

func main() {
	slog.Info("Starting aggregation export job")
	start := time.Now()

	for _, task := range conf.ExportTasks {
		if err := runExportTask(task); err != nil {
			slog.Error("Export task failed",
				slog.String("instanceID", task.InstanceID),
				slog.String("surveyKey", task.SurveyKey),
				slog.String("error", err.Error()))
			continue
		}
	}

	for instanceID, service := range surveyDBServices {
		if err := service.DBClient.Disconnect(context.Background()); err != nil {
			slog.Error("Error closing DB connection", slog.String("instanceID", instanceID), slog.String("error", err.Error()))
		}
	}
	slog.Info("Aggregation export job completed", slog.String("duration", time.Since(start).String()))
}

func runExportTask(task AggregationExportTask) error {
	slog.Debug("Start export task", slog.String("instanceID", task.InstanceID), slog.String("surveyKey", task.SurveyKey))

	dbService, ok := surveyDBServices[task.InstanceID]
	if !ok {
		return fmt.Errorf("no DB connection for instance %s", task.InstanceID)
	}

	config, err := dbService.GetSurveyConfig(task.InstanceID, task.SurveyKey)
	if err != nil {
		return fmt.Errorf("could not load survey config: %w", err)
	}

	catalog, err := dbService.GetOptionSetCatalog(task.InstanceID)
	if err != nil {
		return fmt.Errorf("could not load option sets: %w", err)
	}

	var from int64
	if task.WindowDays > 0 {
		from = time.Now().AddDate(0, 0, -task.WindowDays).Unix()
	}

	responses, err := dbService.GetResponsesInInterval(task.InstanceID, task.SurveyKey, from, 0)
	if err != nil {
		return fmt.Errorf("could not load responses: %w", err)
	}

	series := aggregation.Aggregate(responses, &config, catalog)
	slog.Info("Aggregation computed",
		slog.String("instanceID", task.InstanceID),
		slog.String("surveyKey", task.SurveyKey),
		slog.Int("responseCount", len(responses)),
		slog.Int("seriesCount", len(series)))

	exportName := fmt.Sprintf("%s-%s-aggregations", task.SurveyKey, time.Now().Format("2006-01-02"))

	switch task.ExportFormat {
	case "", "csv":
		filename := filepath.Join(conf.ExportPath, exportName+".csv")
		file, err := os.Create(filename)
		if err != nil {
			return fmt.Errorf("could not create export file: %w", err)
		}
		defer file.Close()
		if err := aggregationExporter.WriteCSV(file, series); err != nil {
			return fmt.Errorf("could not write csv export: %w", err)
		}
		slog.Info("Export file written", slog.String("filename", filename))
	case "xlsx":
		filename := filepath.Join(conf.ExportPath, exportName+".xlsx")
		if err := aggregationExporter.WriteXLSX(filename, series); err != nil {
			return fmt.Errorf("could not write xlsx export: %w", err)
		}
		slog.Info("Export file written", slog.String("filename", filename))
	default:
		return fmt.Errorf("unknown export format: %s", task.ExportFormat)
	}

	return nil
}
