package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/application/predicting"
	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/interfaces/http/dto"
)

// PredictionHandler serves single-record scoring requests against the
// loaded model artifact.
type PredictionHandler struct {
	BaseHandler
	predictor *predicting.Predictor
	logger    *zap.Logger
}

// NewPredictionHandler creates a new prediction handler
func NewPredictionHandler(predictor *predicting.Predictor, logger *zap.Logger) *PredictionHandler {
	return &PredictionHandler{
		predictor: predictor,
		logger:    logger.Named("handler.prediction"),
	}
}

// RegisterRoutes implements router.RouteRegistrar
func (h *PredictionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/predict", h.Predict)
}

// Predict scores one record and returns the predicted return class.
func (h *PredictionHandler) Predict(c *gin.Context) {
	var req dto.PredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	prediction, err := h.predictor.PredictRecord(
		*req.DeliveryDelay,
		*req.DeliveryTime,
		*req.PaymentValue,
		*req.ProductCategory,
	)
	if err != nil {
		h.logger.Warn("prediction rejected",
			zap.String("request_id", getRequestID(c)),
			zap.String("category", *req.ProductCategory),
			zap.Error(err),
		)
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.PredictionResponse{Prediction: prediction})
}

// bindError translates gin binding failures into validation error codes.
func (h *PredictionHandler) bindError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make([]string, 0, len(validationErrs))
		for _, fe := range validationErrs {
			fields = append(fields, jsonFieldName(fe.Field()))
		}
		h.Error(c, dto.GetHTTPStatus(dto.ErrCodeValidationRequired),
			dto.ErrCodeValidationRequired,
			fmt.Sprintf("Invalid or missing fields: %s", strings.Join(fields, ", ")))
		return
	}

	h.Error(c, dto.GetHTTPStatus(dto.ErrCodeInvalidJSON),
		dto.ErrCodeInvalidJSON, "Request body is not valid JSON")
}

// jsonFieldName maps the struct field names the validator reports onto
// the wire names clients actually sent.
func jsonFieldName(field string) string {
	switch field {
	case "DeliveryDelay":
		return "delivery_delay"
	case "DeliveryTime":
		return "delivery_time"
	case "PaymentValue":
		return "payment_value"
	case "ProductCategory":
		return "product_category_name"
	default:
		return field
	}
}
