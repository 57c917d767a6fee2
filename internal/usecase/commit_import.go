package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/xavierca1/ligue-outreach/internal/entity"
)

const DefaultBatchSize = 100

type CommitImportUseCase struct {
	LeadRepo      entity.LeadRepositoryInterface
	BatchSize     int
	DefaultRegion string
	Logger        *zap.Logger
}

func NewCommitImportUseCase(leadRepo entity.LeadRepositoryInterface, batchSize int, defaultRegion string, logger *zap.Logger) *CommitImportUseCase {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &CommitImportUseCase{
		LeadRepo:      leadRepo,
		BatchSize:     batchSize,
		DefaultRegion: defaultRegion,
		Logger:        logger,
	}
}

// Execute insere as linhas em lotes sequenciais. Um lote falho interrompe os seguintes;
// os lotes anteriores continuam gravados e Inserted reflete isso.
func (uc *CommitImportUseCase) Execute(ctx context.Context, input CommitImportInput) (*CommitImportOutput, error) {
	var errs []ValidationError
	if strings.TrimSpace(input.UserID) == "" {
		errs = append(errs, ValidationError{"user_id", "is required"})
	}
	if len(input.Rows) == 0 {
		errs = append(errs, ValidationError{"rows", "must not be empty"})
	}
	if len(errs) > 0 {
		return nil, validationError(errs)
	}

	if input.CampaignName != "" {
		ApplyCampaign(input.Rows, input.CampaignName, nil)
	}

	leads := make([]*entity.Lead, 0, len(input.Rows))
	for _, row := range input.Rows {
		leads = append(leads, entity.NewLeadFromImport(input.UserID, uc.normalize(row)))
	}

	out := &CommitImportOutput{}
	seq := NewSequence()
	total := (len(leads) + uc.BatchSize - 1) / uc.BatchSize
	for start := 0; start < len(leads); start += uc.BatchSize {
		end := start + uc.BatchSize
		if end > len(leads) {
			end = len(leads)
		}
		chunk := leads[start:end]
		name := fmt.Sprintf("batch %d/%d", start/uc.BatchSize+1, total)
		seq.AddOperation(name, func(ctx context.Context) error {
			if err := uc.LeadRepo.InsertBatch(ctx, chunk); err != nil {
				return err
			}
			out.Inserted += len(chunk)
			return nil
		})
	}

	done, err := seq.Execute(ctx)
	out.Batches = done
	if err != nil {
		uc.Logger.Error("❌ importação interrompida",
			zap.String("user_id", input.UserID),
			zap.Int("inserted", out.Inserted),
			zap.Int("batches_done", done),
			zap.Int("batches_total", total),
			zap.Error(err),
		)
		return out, &TechnicalError{
			Code:    CodeDatabase,
			Message: fmt.Sprintf("importação interrompida após %d de %d lotes (%d leads gravados)", done, total, out.Inserted),
			Err:     err,
		}
	}

	uc.Logger.Info("✅ importação concluída",
		zap.String("user_id", input.UserID),
		zap.Int("inserted", out.Inserted),
		zap.Int("batches", done),
	)
	return out, nil
}

// normalize garante as invariantes da linha mesmo quando ela veio editada pelo cliente.
func (uc *CommitImportUseCase) normalize(row entity.ImportRow) entity.ImportRow {
	row.Company = strings.TrimSpace(row.Company)
	row.Email = strings.TrimSpace(row.Email)
	if strings.TrimSpace(row.Region) == "" {
		row.Region = uc.DefaultRegion
	}
	if !row.Status.IsValid() {
		row.Status = entity.ParseLeadStatus(string(row.Status))
	}

	var kws []string
	for _, k := range row.Keywords {
		if k = Sanitize(k); k != "" {
			kws = append(kws, k)
		}
	}
	row.Keywords = padKeywords(kws)
	return row
}
