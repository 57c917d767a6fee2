package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/xavierca1/ligue-outreach/internal/entity"
	"github.com/xavierca1/ligue-outreach/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-outreach/internal/usecase"
)

const maxUploadBytes = 20 << 20

type ImportHandler struct {
	ParseUC  *usecase.ParseLeadsUseCase
	CommitUC *usecase.CommitImportUseCase
}

func NewImportHandler(parse *usecase.ParseLeadsUseCase, commit *usecase.CommitImportUseCase) *ImportHandler {
	return &ImportHandler{ParseUC: parse, CommitUC: commit}
}

// Parse (POST /imports/parse) recebe a planilha no campo multipart "file".
func (h *ImportHandler) Parse(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeValidation, "envie a planilha no campo file")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeValidation, "campo file ausente")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeUnreadableSpreadsheet, "erro ao ler arquivo")
		return
	}

	result, err := h.ParseUC.Execute(r.Context(), usecase.ParseLeadsInput{Data: data, Filename: header.Filename})
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Commit (POST /imports/commit). Em falha parcial o corpo traz quantos leads entraram.
func (h *ImportHandler) Commit(w http.ResponseWriter, r *http.Request) {
	var input usecase.CommitImportInput
	if !decodeJSON(w, r, &input) {
		return
	}

	out, err := h.CommitUC.Execute(r.Context(), input)
	if out != nil {
		middleware.RecordLeadsImported(out.Inserted)
	}
	if err != nil {
		var te *usecase.TechnicalError
		if out != nil && out.Inserted > 0 && errors.As(err, &te) {
			writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
				"error":    te.Code,
				"message":  te.Message,
				"inserted": out.Inserted,
				"batches":  out.Batches,
			})
			return
		}
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, out)
}

type EditRowRequest struct {
	Result   *entity.ParseResult `json:"result"`
	RowIndex int                 `json:"row_index"`
	Field    string              `json:"field"`
	Value    string              `json:"value"`
}

// EditRow (POST /imports/rows/edit) altera uma célula da prévia e devolve o resultado atualizado.
func (h *ImportHandler) EditRow(w http.ResponseWriter, r *http.Request) {
	var req EditRowRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Result == nil {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeValidation, "result is required")
		return
	}

	if err := usecase.EditRow(req.Result, req.RowIndex, req.Field, req.Value); err != nil {
		if errors.Is(err, usecase.ErrRowOutOfRange) {
			writeErrorResponse(w, http.StatusBadRequest, usecase.CodeValidation, err.Error())
			return
		}
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, req.Result)
}
