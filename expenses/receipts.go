package expenses

import (
	"net/http"

	"tripsplit/receipt"
	"tripsplit/storage"
	"tripsplit/trips"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OCRInput is the payload for POST /trips/:id/receipt/ocr.
type OCRInput struct {
	RawText string `json:"rawText" binding:"required"`
}

// ParseReceipt godoc
// @Summary Parse raw OCR text into a structured receipt
// @Description Pure text-in, structured-out helper (spec.md §4.C). Never persists; the client resubmits the result as an itemized expense.
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Trip ID"
// @Param body body OCRInput true "Raw OCR text"
// @Success 200 {object} receipt.Parsed
// @Router /trips/{id}/receipt/ocr [post]
func ParseReceipt(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid trip id"})
		return
	}
	if !trips.IsMember(tripID, user.ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not a member of this trip"})
		return
	}

	var input OCRInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	parsed := receipt.Parse(c.Request.Context(), input.RawText, nil)
	c.JSON(http.StatusOK, parsed)
}

// UploadReceiptImage godoc
// @Summary Upload a photographed receipt
// @Description Stores the image via the configured storage backend and returns a URL an itemized expense can cite as receiptImageUrl
// @Tags expenses
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Trip ID"
// @Param file formData file true "Receipt image"
// @Success 200 {object} storage.UploadResult
// @Router /trips/{id}/receipts [post]
func UploadReceiptImage(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid trip id"})
		return
	}
	if !trips.IsMember(tripID, user.ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not a member of this trip"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read upload"})
		return
	}
	defer file.Close()

	provider, err := storage.GetDefaultProvider()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage unavailable"})
		return
	}

	key := "receipts/" + tripID.String() + "/" + uuid.New().String() + "-" + fileHeader.Filename
	result, err := provider.Upload(key, file, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload receipt"})
		return
	}

	c.JSON(http.StatusOK, result)
}
