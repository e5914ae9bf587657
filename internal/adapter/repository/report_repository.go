package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/meeting-summarizer-team/meeting-summarizer/internal/domain/entities"
	"github.com/meeting-summarizer-team/meeting-summarizer/internal/domain/repositories"
)

// FileReportRepository persists meeting reports as one JSON file per
// meeting under a data directory.
type FileReportRepository struct {
	dataDir string
	logger  *zap.Logger
}

var _ repositories.ReportRepository = (*FileReportRepository)(nil)

// NewFileReportRepository creates the repository and its data directory.
func NewFileReportRepository(dataDir string, logger *zap.Logger) (*FileReportRepository, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileReportRepository{dataDir: dataDir, logger: logger}, nil
}

func (r *FileReportRepository) reportPath(meetingID string) string {
	return filepath.Join(r.dataDir, meetingID+".json")
}

// SaveReport writes the report to a temp file and renames it into place,
// so readers never observe a half-written report.
func (r *FileReportRepository) SaveReport(ctx context.Context, report *entities.MeetingReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if report == nil {
		return fmt.Errorf("report cannot be nil")
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}

	tmp, err := os.CreateTemp(r.dataDir, report.MeetingID+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close report file: %w", err)
	}
	if err := os.Rename(tmpName, r.reportPath(report.MeetingID)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to finalize report: %w", err)
	}

	r.logger.Info("saved meeting report",
		zap.String("meeting_id", report.MeetingID),
		zap.String("path", r.reportPath(report.MeetingID)),
	)
	return nil
}

// GetReportByMeetingID loads a saved report by meeting identity.
func (r *FileReportRepository) GetReportByMeetingID(ctx context.Context, meetingID string) (*entities.MeetingReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.reportPath(meetingID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, entities.ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to read report: %w", err)
	}

	var report entities.MeetingReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to parse report %s: %w", meetingID, err)
	}
	return &report, nil
}

// ListReports returns all saved reports, newest first.
func (r *FileReportRepository) ListReports(ctx context.Context) ([]*entities.MeetingReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dirEntries, err := os.ReadDir(r.dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory: %w", err)
	}

	reports := make([]*entities.MeetingReport, 0, len(dirEntries))
	for _, entry := range dirEntries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		meetingID := strings.TrimSuffix(entry.Name(), ".json")
		report, err := r.GetReportByMeetingID(ctx, meetingID)
		if err != nil {
			r.logger.Warn("skipping unreadable report",
				zap.String("file", entry.Name()),
				zap.Error(err),
			)
			continue
		}
		reports = append(reports, report)
	}

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].Timestamp.After(reports[j].Timestamp)
	})
	return reports, nil
}
