package handlers

import (
	"io"
	"log"
	"net/http"

	"github.com/Lee196444/Text2toss-app/internal/adapter/http/dto/request"
	"github.com/Lee196444/Text2toss-app/internal/adapter/http/dto/response"
	"github.com/Lee196444/Text2toss-app/internal/usecase"
	"github.com/Lee196444/Text2toss-app/pkg"

	"github.com/gin-gonic/gin"
)

// MaxImageBytes caps photo uploads for image quotes.
const MaxImageBytes = 10 << 20

var errMissingImage = pkg.NewDomainErrorSimple("VALIDATION_ERROR", "An image file is required in the 'file' field", http.StatusBadRequest)

type QuoteHandler struct {
	usecase usecase.IQuoteUseCase
}

func NewQuoteHandler(uc usecase.IQuoteUseCase) *QuoteHandler {
	return &QuoteHandler{usecase: uc}
}

// CreateQuote prices a list of items on the volume scale.
//
//	@Summary	Create a quote from an item list
//	@Tags		quotes
//	@Accept		json
//	@Produce	json
//	@Param		quote	body		request.CreateQuoteRequest	true	"Items to haul"
//	@Success	201		{object}	response.QuoteResponse
//	@Failure	400		{object}	pkg.HTTPError
//	@Router		/quotes [post]
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var payload request.CreateQuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeAppError(c, errInvalidPayload)
		return
	}

	quote, err := h.usecase.CreateQuote(c.Request.Context(), payload.ToItems(), payload.Description)
	if err != nil {
		log.Printf("[quote][handler] create failed err=%v", err)
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromQuote(quote))
}

// CreateQuoteFromImage prices a photo of the items.
//
//	@Summary	Create a quote from a photo
//	@Tags		quotes
//	@Accept		multipart/form-data
//	@Produce	json
//	@Param		file		formData	file	true	"Photo of the items"
//	@Param		description	formData	string	false	"Extra context"
//	@Success	201			{object}	response.QuoteResponse
//	@Failure	400			{object}	pkg.HTTPError
//	@Router		/quotes/image [post]
func (h *QuoteHandler) CreateQuoteFromImage(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		writeAppError(c, errMissingImage)
		return
	}
	if fh.Size > MaxImageBytes {
		writeAppError(c, pkg.NewDomainErrorSimple("VALIDATION_ERROR", "Image is too large", http.StatusBadRequest).
			WithDetails(map[string]any{"max_bytes": MaxImageBytes}))
		return
	}
	f, err := fh.Open()
	if err != nil {
		writeAppError(c, errMissingImage)
		return
	}
	defer f.Close()

	image, err := io.ReadAll(io.LimitReader(f, MaxImageBytes+1))
	if err != nil {
		writeError(c, err)
		return
	}
	mimeType := fh.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(image)
	}

	quote, err := h.usecase.CreateQuoteFromImage(c.Request.Context(), image, mimeType, c.PostForm("description"))
	if err != nil {
		log.Printf("[quote][handler] image quote failed mime=%s bytes=%d err=%v", mimeType, len(image), err)
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromQuote(quote))
}

//	@Summary	Get a quote
//	@Tags		quotes
//	@Produce	json
//	@Param		quote_id	path		string	true	"Quote ID"
//	@Success	200			{object}	response.QuoteResponse
//	@Failure	404			{object}	pkg.HTTPError
//	@Router		/quotes/{quote_id} [get]
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	quote, err := h.usecase.GetByID(c.Request.Context(), c.Param("quote_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(quote))
}
