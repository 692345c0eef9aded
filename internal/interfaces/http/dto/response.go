package dto

// Response is the envelope error responses are written in. Success bodies
// are the bare payload object (PredictionResponse, LivenessResponse); the
// envelope exists so every failure carries a machine-readable code.
type Response struct {
	Success bool       `json:"success"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

// ErrorInfo represents error details
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message string) Response {
	return Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
	}
}

// PredictionRequest is the serving endpoint's input record. The category
// is the raw label; encoding to the training-time code happens server-side
// against the artifact schema. Pointer fields distinguish a missing field
// from a legitimate zero.
type PredictionRequest struct {
	DeliveryDelay   *int     `json:"delivery_delay" binding:"required"`
	DeliveryTime    *int     `json:"delivery_time" binding:"required,min=0"`
	PaymentValue    *float64 `json:"payment_value" binding:"required,min=0"`
	ProductCategory *string  `json:"product_category_name" binding:"required"`
}

// PredictionResponse carries one class prediction.
type PredictionResponse struct {
	Prediction int `json:"prediction"`
}

// LivenessResponse is the root route's payload.
type LivenessResponse struct {
	Message string `json:"message"`
}
