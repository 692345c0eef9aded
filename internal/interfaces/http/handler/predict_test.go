package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/application/predicting"
	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/domain/dataset"
	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/domain/model"
	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/interfaces/http/dto"
	"github.com/Shrikant-Ganji/ecommerce-return-mlops/internal/interfaces/http/router"
)

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	schema := dataset.NewSchema([]string{"books", "electronics"})
	x := [][]float64{
		{-3, 4, 50, 0},
		{-2, 5, 100, 1},
		{-4, 3, 40, 0},
		{6, 20, 300, 1},
		{7, 22, 280, 0},
		{8, 25, 320, 1},
	}
	y := []int{0, 0, 0, 1, 1, 1}
	m := model.NewLogisticRegression(model.DefaultLogisticRegressionParams())
	require.NoError(t, m.Fit(x, y))
	predictor := predicting.NewPredictor(model.NewArtifact(m, schema), zap.NewNop())

	engine := gin.New()
	r := router.NewRouter(engine)
	r.Register(NewHealthHandler()).
		Register(NewPredictionHandler(predictor, zap.NewNop()))
	r.Setup()
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	return resp
}

func TestPredictionHandler_Predict(t *testing.T) {
	engine := newTestEngine(t)

	t.Run("valid record returns a bare prediction object", func(t *testing.T) {
		body := `{"delivery_delay":-2,"delivery_time":5,"payment_value":100.0,"product_category_name":"electronics"}`
		w := doJSON(t, engine, http.MethodPost, "/predict", body)

		assert.Equal(t, http.StatusOK, w.Code)

		// The success body is the prediction object itself, not an envelope.
		var raw map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
		require.Contains(t, raw, "prediction")
		assert.NotContains(t, raw, "data")
		assert.NotContains(t, raw, "success")

		var resp dto.PredictionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, []int{0, 1}, resp.Prediction)
	})

	t.Run("zero values are legitimate field values", func(t *testing.T) {
		body := `{"delivery_delay":0,"delivery_time":0,"payment_value":0,"product_category_name":"books"}`
		w := doJSON(t, engine, http.MethodPost, "/predict", body)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp dto.PredictionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, []int{0, 1}, resp.Prediction)
	})

	t.Run("missing field names the field", func(t *testing.T) {
		body := `{"delivery_delay":-2,"delivery_time":5,"product_category_name":"electronics"}`
		w := doJSON(t, engine, http.MethodPost, "/predict", body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := errorBody(t, w)
		assert.Equal(t, dto.ErrCodeValidationRequired, resp.Error.Code)
		assert.Contains(t, resp.Error.Message, "payment_value")
	})

	t.Run("unseen category is unprocessable", func(t *testing.T) {
		body := `{"delivery_delay":-2,"delivery_time":5,"payment_value":100.0,"product_category_name":"furniture"}`
		w := doJSON(t, engine, http.MethodPost, "/predict", body)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		resp := errorBody(t, w)
		assert.Equal(t, dto.ErrCodeUnknownCategory, resp.Error.Code)
	})

	t.Run("malformed JSON is a bad request", func(t *testing.T) {
		w := doJSON(t, engine, http.MethodPost, "/predict", `{"delivery_delay":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := errorBody(t, w)
		assert.Equal(t, dto.ErrCodeInvalidJSON, resp.Error.Code)
	})

	t.Run("negative delivery time is rejected", func(t *testing.T) {
		body := `{"delivery_delay":-2,"delivery_time":-5,"payment_value":100.0,"product_category_name":"books"}`
		w := doJSON(t, engine, http.MethodPost, "/predict", body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := errorBody(t, w)
		assert.Contains(t, resp.Error.Message, "delivery_time")
	})
}

func TestHealthHandler_Root(t *testing.T) {
	engine := newTestEngine(t)

	w := doJSON(t, engine, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.LivenessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "E-commerce Return Prediction API is live!", resp.Message)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	assert.NotContains(t, raw, "data")
}
