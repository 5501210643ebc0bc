package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/joseph-ayodele/invoice-parser/constants"
	"github.com/joseph-ayodele/invoice-parser/internal/common"
	"github.com/joseph-ayodele/invoice-parser/internal/document"
	"github.com/joseph-ayodele/invoice-parser/internal/export"
	"github.com/joseph-ayodele/invoice-parser/internal/invoice"
)

const xlsxMediaType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ParseInvoice accepts a multipart "file" and answers with the record or an
// error body. ?format=xlsx returns a workbook; ?download=1 returns the JSON
// as an attachment.
func (s *Server) ParseInvoice(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxUploadBytes)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file exceeds upload limit"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	defer file.Close()

	if !constants.IsAllowedExt(filepath.Ext(header.Filename)) {
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "only PDF invoices are supported"})
		return
	}
	// A damaged .pdf still goes through the pipeline and comes back as the
	// unreadable-document error.
	doc := document.New(header.Filename, file)
	if !doc.LooksLikePDF() {
		s.logger.Warn("http.upload.no_pdf_header", "req_id", common.RequestIDFromContext(c.Request.Context()), "file", header.Filename)
	}

	rec, err := s.extractor.Extract(c.Request.Context(), doc)
	outcome := invoice.NewOutcome(rec, err)
	if outcome.Err != nil {
		c.JSON(statusFor(outcome.Err), outcome)
		return
	}

	switch {
	case c.Query("format") == "xlsx":
		b, err := s.exporter.InvoiceXLSX([]export.Entry{{Source: header.Filename, Record: rec}})
		if err != nil {
			s.logger.Error("http.export_failed", "req_id", common.RequestIDFromContext(c.Request.Context()), "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+export.FileName(rec, "xlsx")+`"`)
		c.Data(http.StatusOK, xlsxMediaType, b)
	case c.Query("download") == "1":
		b, err := json.MarshalIndent(outcome, "", "  ")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "encode failed"})
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+export.FileName(rec, "json")+`"`)
		c.Data(http.StatusOK, "application/json", b)
	default:
		c.JSON(http.StatusOK, outcome)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrUnreadableDocument), errors.Is(err, common.ErrMalformedReply):
		return http.StatusUnprocessableEntity
	case errors.Is(err, common.ErrModelCall):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
