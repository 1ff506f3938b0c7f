package v1

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"portfolio-api/internal/delivery/http/middleware"
	"portfolio-api/internal/delivery/http/response"
	"portfolio-api/internal/domain"
	"portfolio-api/pkg/apperror"
	"portfolio-api/pkg/extract"
	"portfolio-api/pkg/security"

	"github.com/gin-gonic/gin"
)

// maxFitBodyBytes leaves room for the text field and multipart framing around a max-size file.
const maxFitBodyBytes = extract.MaxFileBytes + 1<<20

var fileTooLargeMessage = fmt.Sprintf("File too large (max %dMB).", extract.MaxFileBytes>>20)

type FitHandler struct {
	fitUC  domain.FitUsecase
	secLog *security.SecurityLogger
}

// NewFitHandler registers POST /fit. Errors render as {error}.
func NewFitHandler(api *gin.RouterGroup, fitUC domain.FitUsecase, secLog *security.SecurityLogger, limiter gin.HandlerFunc) {
	if secLog == nil {
		secLog = security.DefaultLogger()
	}
	handler := &FitHandler{
		fitUC:  fitUC,
		secLog: secLog,
	}

	group := api.Group("/fit",
		middleware.ErrorHandler(response.Error),
		middleware.Recovery(response.Error, secLog),
	)
	group.POST("", limiter, handler.CheckFit)
}

// CheckFit godoc
// @Summary      Score a job description
// @Description  Scores pasted text and/or an uploaded PDF, DOCX or TXT job description against the candidate profile.
// @Tags         fit
// @Accept       multipart/form-data
// @Produce      json
// @Param        text                   formData  string  false  "Pasted job description"
// @Param        file                   formData  file    false  "Job description file (PDF, DOCX, TXT; max 10MB)"
// @Param        turnstileToken         formData  string  false  "Turnstile token"
// @Param        cf-turnstile-response  formData  string  false  "Turnstile token (widget default field name)"
// @Success      200  {object}  domain.FitResult
// @Failure      400  {object}  response.ErrorResponse
// @Failure      429  {object}  response.ErrorResponse
// @Failure      500  {object}  response.ErrorResponse
// @Router       /fit [post]
func (h *FitHandler) CheckFit(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxFitBodyBytes)

	meta := requestMeta(c)

	if err := c.Request.ParseMultipartForm(maxFitBodyBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.secLog.LogUploadRejected(c.Request.Context(), meta.ClientIP, meta.RequestID, "", "request body too large")
			_ = c.Error(apperror.TooLarge(fileTooLargeMessage, err))
			return
		}
		_ = c.Error(apperror.Validation("Invalid form data.", err))
		return
	}

	in := &domain.FitCheckInput{
		PastedText: c.PostForm("text"),
		Token:      c.PostForm("turnstileToken"),
	}
	if in.Token == "" {
		in.Token = c.PostForm("cf-turnstile-response")
	}

	file, err := h.readFile(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	in.File = file

	result, err := h.fitUC.CheckFit(c.Request.Context(), in, meta)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.JSON(c, http.StatusOK, result)
}

// readFile returns nil when no file was sent, including an empty file input.
// An oversize part is passed on unread; the usecase rejects it after verification.
func (h *FitHandler) readFile(c *gin.Context) (*domain.UploadedFile, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, apperror.Validation("Invalid form data.", err)
	}
	if fh.Filename == "" && fh.Size == 0 {
		return nil, nil
	}
	file := &domain.UploadedFile{
		Filename:  fh.Filename,
		MediaType: fh.Header.Get("Content-Type"),
		Size:      fh.Size,
	}
	if fh.Size > extract.MaxFileBytes {
		return file, nil
	}

	data, err := readAll(fh)
	if err != nil {
		return nil, apperror.ExtractionFailed("Could not read the uploaded file.", err)
	}

	file.Data = data
	return file, nil
}

func readAll(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	// One byte past the cap so the extractor still sees an oversize file as too large.
	return io.ReadAll(io.LimitReader(f, extract.MaxFileBytes+1))
}
