package handler_test

import (
	"context"
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

func TestHandler_Login(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockAuthService)

	var tests = []struct {
		name         string
		mockBehavior mockBehavior
		form         string
		response     response
		wantErr      bool
	}{
		{
			name: "ok",
			mockBehavior: func(r *service_mocks.MockAuthService) {
				r.EXPECT().
					Login(context.Background(), "ann@example.com", "s3cret-pass").
					Return(model.TokenPair{
						AccessToken:  "acc-token",
						RefreshToken: "ref-token",
						TokenType:    "bearer",
					}, nil)
			},
			form: "username=ann%40example.com&password=s3cret-pass",
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"access_token":"acc-token","refresh_token":"ref-token","token_type":"bearer"}`,
			},
			wantErr: false,
		},
		{
			name: "err. bad credentials",
			mockBehavior: func(r *service_mocks.MockAuthService) {
				r.EXPECT().
					Login(context.Background(), "ann@example.com", "wrong-pass").
					Return(model.TokenPair{}, errs.ErrInvalidCred)
			},
			form: "username=ann%40example.com&password=wrong-pass",
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"invalid email or password"}`,
			},
			wantErr: true,
		},
		{
			name:         "err. username not an email",
			mockBehavior: func(r *service_mocks.MockAuthService) {},
			form:         "username=ann&password=s3cret-pass",
			response: response{
				expectedCode: http.StatusBadRequest,
			},
			wantErr: true,
		},
		{
			name:         "err. password missing",
			mockBehavior: func(r *service_mocks.MockAuthService) {},
			form:         "username=ann%40example.com",
			response: response{
				expectedCode: http.StatusBadRequest,
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
			svc := service_mocks.NewMockAuthService(c)
			log := zap.NewExample().Named("test")
			h := handler.New(nil, nil, nil, svc, log)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.POST("/auth/login", h.Login)

			r := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(tt.form))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
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

func TestHandler_RegisterReader(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockReaderService)

	var tests = []struct {
		name         string
		mockBehavior mockBehavior
		body         string
		response     response
		wantErr      bool
	}{
		{
			name: "ok",
			mockBehavior: func(r *service_mocks.MockReaderService) {
				r.EXPECT().
					Create(context.Background(), model.CreateReaderRequest{
						Name:  "Ann",
						Email: "ann@example.com",
					}).
					Return(model.Reader{ID: 1, Name: "Ann", Email: "ann@example.com"}, nil)
			},
			body: `{"name":"Ann","email":"ann@example.com"}`,
			response: response{
				expectedCode: http.StatusCreated,
				expectedBody: `{"id":1,"name":"Ann","email":"ann@example.com"}`,
			},
			wantErr: false,
		},
		{
			name: "err. email taken",
			mockBehavior: func(r *service_mocks.MockReaderService) {
				r.EXPECT().
					Create(context.Background(), gomock.Any()).
					Return(model.Reader{}, errs.ErrEmailTaken)
			},
			body: `{"name":"Ann","email":"ann@example.com"}`,
			response: response{
				expectedCode: http.StatusConflict,
				expectedBody: `{"message":"email already registered"}`,
			},
			wantErr: true,
		},
		{
			name:         "err. email invalid",
			mockBehavior: func(r *service_mocks.MockReaderService) {},
			body:         `{"name":"Ann","email":"not-an-email"}`,
			response: response{
				expectedCode: http.StatusBadRequest,
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
			e.POST("/auth/registration/reader", h.RegisterReader)

			r := httptest.NewRequest(http.MethodPost, "/auth/registration/reader", strings.NewReader(tt.body))
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

func TestHandler_RegisterLibrarian(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockLibrarianService)

	var tests = []struct {
		name         string
		mockBehavior mockBehavior
		body         string
		response     response
		wantErr      bool
	}{
		{
			name: "ok",
			mockBehavior: func(r *service_mocks.MockLibrarianService) {
				r.EXPECT().
					Register(context.Background(), model.CreateLibrarianRequest{
						Name:     "Bob",
						Email:    "bob@example.com",
						Password: "s3cret-pass",
					}).
					Return(model.Librarian{ID: 1, Name: "Bob", Email: "bob@example.com"}, nil)
			},
			body: `{"name":"Bob","email":"bob@example.com","password":"s3cret-pass"}`,
			response: response{
				expectedCode: http.StatusCreated,
				expectedBody: `{"id":1,"name":"Bob","email":"bob@example.com"}`,
			},
			wantErr: false,
		},
		{
			name:         "err. password too short",
			mockBehavior: func(r *service_mocks.MockLibrarianService) {},
			body:         `{"name":"Bob","email":"bob@example.com","password":"abc"}`,
			response: response{
				expectedCode: http.StatusBadRequest,
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
			svc := service_mocks.NewMockLibrarianService(c)
			log := zap.NewExample().Named("test")
			h := handler.New(nil, nil, svc, nil, log)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.POST("/auth/registration/librarian", h.RegisterLibrarian)

			r := httptest.NewRequest(http.MethodPost, "/auth/registration/librarian", strings.NewReader(tt.body))
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
