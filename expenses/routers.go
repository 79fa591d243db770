package expenses

import "github.com/gin-gonic/gin"

// RouterGroupTripExpenses wires expense creation and listing, nested
// under a trip.
func RouterGroupTripExpenses(router *gin.RouterGroup) {
	router.GET("", ListExpenses)
	router.POST("", CreateExpense)
}

// RouterGroupExpenses wires standalone expense lookups.
func RouterGroupExpenses(router *gin.RouterGroup) {
	router.GET("/:expenseId", GetExpense)
}

// RouterGroupTripReceipts wires the OCR helper and receipt image
// upload, nested under a trip at the paths spec.md §6 names
// (/trips/:id/receipt/ocr and /trips/:id/receipts) rather than under
// the expenses sub-resource.
func RouterGroupTripReceipts(router *gin.RouterGroup) {
	router.POST("/receipt/ocr", ParseReceipt)
	router.POST("/receipts", UploadReceiptImage)
}

