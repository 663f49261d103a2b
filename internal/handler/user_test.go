package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ayzikov/patres-test/internal/errs"
	"github.com/ayzikov/patres-test/internal/handler"
	"github.com/ayzikov/patres-test/internal/model"
	"github.com/ayzikov/patres-test/pkg/validate"

	service_mocks "github.com/ayzikov/patres-test/internal/handler/mocks"
)

func TestHandler_UpdateReader(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockReaderService)

	newEmail := "ann@work.example.com"

	var tests = []struct {
		name         string
		mockBehavior mockBehavior
		readerID     string
		body         string
		response     response
		wantErr      bool
	}{
		{
			name: "ok",
			mockBehavior: func(r *service_mocks.MockReaderService) {
				r.EXPECT().
					Update(context.Background(), 7, model.UpdateReaderRequest{Email: &newEmail}).
					Return(nil)
			},
			readerID: "7",
			body:     `{"email":"ann@work.example.com"}`,
			response: response{
				expectedCode: http.StatusNoContent,
			},
			wantErr: false,
		},
		{
			name: "err. not found",
			mockBehavior: func(r *service_mocks.MockReaderService) {
				r.EXPECT().
					Update(context.Background(), 7, gomock.Any()).
					Return(errs.ErrNotFound)
			},
			readerID: "7",
			body:     `{"email":"ann@work.example.com"}`,
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"not found"}`,
			},
			wantErr: true,
		},
		{
			name:         "err. email invalid",
			mockBehavior: func(r *service_mocks.MockReaderService) {},
			readerID:     "7",
			body:         `{"email":"not-an-email"}`,
			response: response{
				expectedCode: http.StatusBadRequest,
			},
			wantErr: true,
		},
		{
			name:         "err. invalid id",
			mockBehavior: func(r *service_mocks.MockReaderService) {},
			readerID:     "seven",
			body:         `{}`,
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"id is invalid"}`,
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockReaderService(c)
			log := zap.NewExample().Named("test")
			h := handler.New(nil, svc, nil, nil, log)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.PATCH("/users/readers/:id", h.UpdateReader)

			r := httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/users/readers/%s", tt.readerID), strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			tt.mockBehavior(svc)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			if tt.response.expectedBody != "" {
				require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
			}
		})
	}
}

func TestHandler_DeleteReader(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockReaderService)

	var tests = []struct {
		name         string
		mockBehavior mockBehavior
		readerID     string
		response     response
		wantErr      bool
	}{
		{
			name: "ok",
			mockBehavior: func(r *service_mocks.MockReaderService) {
				r.EXPECT().
					Delete(context.Background(), 7).
					Return(nil)
			},
			readerID: "7",
			response: response{
				expectedCode: http.StatusNoContent,
			},
			wantErr: false,
		},
		{
			name: "err. active loans remain",
			mockBehavior: func(r *service_mocks.MockReaderService) {
				r.EXPECT().
					Delete(context.Background(), 7).
					Return(errs.ErrHasLoans)
			},
			readerID: "7",
			response: response{
				expectedCode: http.StatusConflict,
				expectedBody: `{"message":"loan records still reference this record"}`,
			},
			wantErr: true,
		},
		{
			name: "err. not found",
			mockBehavior: func(r *service_mocks.MockReaderService) {
				r.EXPECT().
					Delete(context.Background(), 7).
					Return(errs.ErrNotFound)
			},
			readerID: "7",
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"not found"}`,
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockReaderService(c)
			log := zap.NewExample().Named("test")
			h := handler.New(nil, svc, nil, nil, log)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.DELETE("/users/readers/:id", h.DeleteReader)

			r := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/users/readers/%s", tt.readerID), http.NoBody)
			w := httptest.NewRecorder()

			tt.mockBehavior(svc)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			if tt.response.expectedBody != "" {
				require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
			}
		})
	}
}
