package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/internal/core/ports/mocks"
	"wallet-ledger/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	ErrorCode string          `json:"error_code"`
}

func newContext(method, target string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, reader)
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

var fixedTime = time.Date(2025, 4, 2, 9, 30, 0, 0, time.UTC)

// --- Auth Handler Tests ---

func TestRegister_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	mockAuth.EXPECT().Register(gomock.Any(), ports.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password123",
	}).Return(&domain.User{ID: 1, Username: "alice", Email: "alice@example.com", Role: domain.RoleUser}, nil)

	c, w := newContext(http.MethodPost, "/api/auth/register", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "password123",
	})
	h.Register(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	env := decode(t, w)
	assert.True(t, env.Success)

	var data map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "alice", data["username"])
	assert.Equal(t, domain.RoleUser, data["role"])
	assert.NotContains(t, w.Body.String(), "password123")
}

func TestRegister_ValidationError(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := NewAuthHandler(mocks.NewMockAuthService(ctrl))

	c, w := newContext(http.MethodPost, "/api/auth/register", map[string]string{"username": "al"})
	h.Register(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperror.CodeInvalidArgument, decode(t, w).ErrorCode)
}

func TestRegister_Duplicate(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	mockAuth.EXPECT().Register(gomock.Any(), gomock.Any()).Return(nil, apperror.ErrUsernameExists())

	c, w := newContext(http.MethodPost, "/api/auth/register", map[string]string{
		"username": "alice",
		"password": "password123",
	})
	h.Register(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, apperror.CodeUsernameExists, decode(t, w).ErrorCode)
}

func TestLogin_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	mockAuth.EXPECT().Login(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ interface{}, req ports.LoginRequest) (*ports.LoginResult, error) {
			assert.Equal(t, "alice", req.Username)
			assert.NotEmpty(t, req.ClientIP)
			return &ports.LoginResult{Token: "jwt", ExpiresAt: fixedTime, Username: "alice", Role: domain.RoleUser}, nil
		})

	c, w := newContext(http.MethodPost, "/api/auth/login", map[string]string{
		"username": "alice",
		"password": "password123",
	})
	h.Login(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var data map[string]string
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &data))
	assert.Equal(t, "jwt", data["token"])
	assert.Equal(t, "2025-04-02T09:30:00Z", data["expires_at"])
}

func TestLogin_InvalidCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	mockAuth.EXPECT().Login(gomock.Any(), gomock.Any()).Return(nil, apperror.ErrInvalidCredentials())

	c, w := newContext(http.MethodPost, "/api/auth/login", map[string]string{
		"username": "alice",
		"password": "wrong",
	})
	h.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// --- Wallet Handler Tests ---

func TestWalletList(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSvc := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockSvc)

	mockSvc.EXPECT().ListWallets(gomock.Any()).Return([]ports.WalletView{
		{ID: 1, DocumentID: "D1", Name: "Alice", Balance: decimal.NewFromInt(100), CreatedAt: fixedTime},
		{ID: 2, DocumentID: "D2", Name: "Bob", Balance: decimal.RequireFromString("0.5"), CreatedAt: fixedTime},
	}, nil)

	c, w := newContext(http.MethodGet, "/api/wallets", nil)
	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var items []map[string]interface{}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &items))
	require.Len(t, items, 2)
	assert.Equal(t, "100.00", items[0]["balance"])
	assert.Equal(t, "0.50", items[1]["balance"])
	assert.Nil(t, items[0]["updated_at"])
}

func TestWalletList_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSvc := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockSvc)

	mockSvc.EXPECT().ListWallets(gomock.Any()).Return(nil, nil)

	c, w := newContext(http.MethodGet, "/api/wallets", nil)
	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, string(decode(t, w).Data))
}

func TestWalletGet(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSvc := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockSvc)

	updated := fixedTime.Add(time.Hour)
	mockSvc.EXPECT().GetWallet(gomock.Any(), int64(7)).Return(&ports.WalletView{
		ID: 7, DocumentID: "D7", Name: "Seven", Balance: decimal.NewFromInt(7), CreatedAt: fixedTime, UpdatedAt: &updated,
	}, nil)

	c, w := newContext(http.MethodGet, "/api/wallets/7", nil)
	c.Params = gin.Params{{Key: "id", Value: "7"}}
	h.Get(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &data))
	assert.Equal(t, float64(7), data["id"])
	assert.Equal(t, "D7", data["document_id"])
	assert.Equal(t, "2025-04-02T10:30:00Z", data["updated_at"])
}

func TestWalletGet_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSvc := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockSvc)

	mockSvc.EXPECT().GetWallet(gomock.Any(), int64(99)).Return(nil, apperror.ErrWalletNotFound(99))

	c, w := newContext(http.MethodGet, "/api/wallets/99", nil)
	c.Params = gin.Params{{Key: "id", Value: "99"}}
	h.Get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperror.CodeNotFound, decode(t, w).ErrorCode)
}

func TestWalletGet_BadID(t *testing.T) {
	for _, raw := range []string{"abc", "0", "-3"} {
		t.Run(raw, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			h := NewWalletHandler(mocks.NewMockWalletService(ctrl))

			c, w := newContext(http.MethodGet, "/api/wallets/"+raw, nil)
			c.Params = gin.Params{{Key: "id", Value: raw}}
			h.Get(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestWalletCreate(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSvc := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockSvc)

	mockSvc.EXPECT().CreateWallet(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ interface{}, req ports.CreateWalletRequest) (*ports.WalletView, error) {
			assert.Equal(t, "12345", req.DocumentID)
			assert.Equal(t, "Alice", req.Name)
			assert.True(t, req.InitialBalance.Equal(decimal.RequireFromString("10.25")))
			return &ports.WalletView{ID: 3, DocumentID: req.DocumentID, Name: req.Name, Balance: req.InitialBalance, CreatedAt: fixedTime}, nil
		})

	c, w := newContext(http.MethodPost, "/api/wallets", `{"document_id":"12345","name":"Alice","initial_balance":"10.25"}`)
	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	env := decode(t, w)
	assert.Equal(t, MsgWalletCreated, env.Message)

	subject, ok := c.Get("audit_subject")
	require.True(t, ok)
	assert.Equal(t, "3", subject)
}

func TestWalletCreate_NumericBalance(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSvc := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockSvc)

	mockSvc.EXPECT().CreateWallet(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ interface{}, req ports.CreateWalletRequest) (*ports.WalletView, error) {
			assert.True(t, req.InitialBalance.Equal(decimal.NewFromInt(50)))
			return &ports.WalletView{ID: 1, Balance: req.InitialBalance, CreatedAt: fixedTime}, nil
		})

	c, w := newContext(http.MethodPost, "/api/wallets", `{"document_id":"1","name":"A","initial_balance":50}`)
	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestWalletCreate_InvalidArgument(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSvc := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockSvc)

	mockSvc.EXPECT().CreateWallet(gomock.Any(), gomock.Any()).
		Return(nil, apperror.InvalidArgument("Name and document are required."))

	c, w := newContext(http.MethodPost, "/api/wallets", `{"document_id":"","name":""}`)
	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decode(t, w)
	assert.False(t, env.Success)
	assert.Equal(t, apperror.CodeInvalidArgument, env.ErrorCode)
}

func TestWalletCreate_MalformedJSON(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := NewWalletHandler(mocks.NewMockWalletService(ctrl))

	c, w := newContext(http.MethodPost, "/api/wallets", `{"name":`)
	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWalletCreateAndUpdate_NameRoundTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSvc := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockSvc)

	const name = "Tom & Jerry's <Shop>"
	mockSvc.EXPECT().CreateWallet(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ interface{}, req ports.CreateWalletRequest) (*ports.WalletView, error) {
			assert.Equal(t, name, req.Name)
			assert.Equal(t, "A&B-1", req.DocumentID)
			return &ports.WalletView{ID: 8, DocumentID: req.DocumentID, Name: req.Name, CreatedAt: fixedTime}, nil
		})
	mockSvc.EXPECT().UpdateWallet(gomock.Any(), ports.UpdateWalletRequest{ID: 8, Name: name}).
		Return(&ports.WalletView{ID: 8, Name: name, CreatedAt: fixedTime, UpdatedAt: &fixedTime}, nil)

	c, w := newContext(http.MethodPost, "/api/wallets", map[string]string{
		"document_id": " A&B-1 ",
		"name":        name,
	})
	h.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)

	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &created))
	assert.Equal(t, name, created["name"])

	// sending the returned name back must not change it
	c, w = newContext(http.MethodPut, "/api/wallets/8", map[string]interface{}{"name": created["name"]})
	c.Params = gin.Params{{Key: "id", Value: "8"}}
	h.Update(c)
	require.Equal(t, http.StatusOK, w.Code)

	var updated map[string]interface{}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &updated))
	assert.Equal(t, name, updated["name"])
}

func TestWalletUpdate(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSvc := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockSvc)

	mockSvc.EXPECT().UpdateWallet(gomock.Any(), ports.UpdateWalletRequest{ID: 4, Name: "Renamed"}).
		Return(&ports.WalletView{ID: 4, Name: "Renamed", Balance: decimal.NewFromInt(1), CreatedAt: fixedTime, UpdatedAt: &fixedTime}, nil)

	c, w := newContext(http.MethodPut, "/api/wallets/4", map[string]string{"name": "Renamed"})
	c.Params = gin.Params{{Key: "id", Value: "4"}}
	h.Update(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, MsgWalletUpdated, decode(t, w).Message)
}

func TestWalletDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSvc := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockSvc)

	mockSvc.EXPECT().DeleteWallet(gomock.Any(), int64(5)).Return(nil)

	c, w := newContext(http.MethodDelete, "/api/wallets/5", nil)
	c.Params = gin.Params{{Key: "id", Value: "5"}}
	h.Delete(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, MsgWalletDeleted, decode(t, w).Message)
}

func TestWalletDelete_StoreUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSvc := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockSvc)

	mockSvc.EXPECT().DeleteWallet(gomock.Any(), int64(5)).Return(apperror.StoreUnavailable(errors.New("conn reset")))

	c, w := newContext(http.MethodDelete, "/api/wallets/5", nil)
	c.Params = gin.Params{{Key: "id", Value: "5"}}
	h.Delete(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.NotContains(t, w.Body.String(), "conn reset")
}

func TestTransfer_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSvc := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockSvc)

	mockSvc.EXPECT().Transfer(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ interface{}, req ports.TransferRequest) (*ports.TransferResult, error) {
			assert.Equal(t, int64(1), req.SourceWalletID)
			assert.Equal(t, int64(2), req.TargetWalletID)
			assert.True(t, req.Amount.Equal(decimal.RequireFromString("12.5")))
			return &ports.TransferResult{
				SourceWalletID:      1,
				TargetWalletID:      2,
				Amount:              req.Amount,
				DebitTransactionID:  10,
				CreditTransactionID: 11,
				CompletedAt:         fixedTime,
			}, nil
		})

	c, w := newContext(http.MethodPost, "/api/wallets/transfer", `{"source_wallet_id":1,"target_wallet_id":2,"amount":"12.5"}`)
	h.Transfer(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	assert.Equal(t, MsgTransferCompleted, env.Message)

	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "12.50", data["amount"])
	assert.Equal(t, float64(10), data["debit_transaction_id"])
	assert.Equal(t, float64(11), data["credit_transaction_id"])
}

func TestTransfer_InsufficientFunds(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSvc := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockSvc)

	mockSvc.EXPECT().Transfer(gomock.Any(), gomock.Any()).Return(nil, apperror.ErrInsufficientFunds())

	c, w := newContext(http.MethodPost, "/api/wallets/transfer", `{"source_wallet_id":1,"target_wallet_id":2,"amount":"500"}`)
	h.Transfer(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, apperror.CodeInsufficientFunds, decode(t, w).ErrorCode)
}

func TestTransfer_MissingIDs(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := NewWalletHandler(mocks.NewMockWalletService(ctrl))

	c, w := newContext(http.MethodPost, "/api/wallets/transfer", `{"amount":"5"}`)
	h.Transfer(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTransactions_FiltersAndPaging(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSvc := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockSvc)

	mockSvc.EXPECT().GetTransactions(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ interface{}, q ports.TransactionQuery) (*ports.TransactionPage, error) {
			assert.Equal(t, int64(1), q.WalletID)
			require.NotNil(t, q.From)
			require.NotNil(t, q.To)
			assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), *q.From)
			assert.Equal(t, time.Date(2025, 1, 31, 23, 59, 59, 0, time.UTC), *q.To)
			assert.Equal(t, 2, q.Page)
			assert.Equal(t, 3, q.PageSize)
			return &ports.TransactionPage{
				Items: []ports.TransactionView{
					{ID: 9, WalletID: 1, Amount: decimal.NewFromInt(4), Type: "Debit", CreatedAt: fixedTime},
				},
				Page:       2,
				PageSize:   3,
				TotalCount: 7,
			}, nil
		})

	c, w := newContext(http.MethodGet, "/api/wallets/1/transactions?fromDate=2025-01-01&toDate=2025-01-31T23:59:59&page=2&pageSize=3", nil)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	h.Transactions(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &data))
	assert.Equal(t, float64(7), data["total"])
	assert.Equal(t, float64(3), data["total_pages"])
	items := data["items"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "Debit", items[0].(map[string]interface{})["type"])
	assert.Equal(t, "4.00", items[0].(map[string]interface{})["amount"])
}

func TestTransactions_Defaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSvc := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockSvc)

	mockSvc.EXPECT().GetTransactions(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ interface{}, q ports.TransactionQuery) (*ports.TransactionPage, error) {
			assert.Nil(t, q.From)
			assert.Nil(t, q.To)
			assert.Equal(t, 1, q.Page)
			assert.Equal(t, 10, q.PageSize)
			return &ports.TransactionPage{Page: 1, PageSize: 10}, nil
		})

	c, w := newContext(http.MethodGet, "/api/wallets/1/transactions", nil)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	h.Transactions(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &data))
	assert.Equal(t, float64(0), data["total_pages"])
	assert.Empty(t, data["items"])
}

func TestTransactions_BadDate(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := NewWalletHandler(mocks.NewMockWalletService(ctrl))

	c, w := newContext(http.MethodGet, "/api/wallets/1/transactions?fromDate=yesterday", nil)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	h.Transactions(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperror.CodeInvalidArgument, decode(t, w).ErrorCode)
}

func TestTransactions_StoreUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSvc := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockSvc)

	mockSvc.EXPECT().GetTransactions(gomock.Any(), gomock.Any()).
		Return(nil, apperror.StoreUnavailable(errors.New("timeout")))

	c, w := newContext(http.MethodGet, "/api/wallets/42/transactions", nil)
	c.Params = gin.Params{{Key: "id", Value: "42"}}
	h.Transactions(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, apperror.CodeStoreUnavailable, decode(t, w).ErrorCode)
}

// --- Health ---

func TestHealthCheck(t *testing.T) {
	ctrl := gomock.NewController(t)

	db := mocks.NewMockHealthChecker(ctrl)
	db.EXPECT().Name().Return("postgresql").AnyTimes()
	db.EXPECT().Ping(gomock.Any()).Return(nil)

	cache := mocks.NewMockHealthChecker(ctrl)
	cache.EXPECT().Name().Return("redis").AnyTimes()
	cache.EXPECT().Ping(gomock.Any()).Return(errors.New("connection refused"))

	c, w := newContext(http.MethodGet, "/health", nil)
	HealthCheck(db, cache)(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body["status"])
	deps := body["dependencies"].(map[string]interface{})
	assert.Equal(t, "healthy", deps["postgresql"].(map[string]interface{})["status"])
	assert.Equal(t, "connection refused", deps["redis"].(map[string]interface{})["error"])
}

func TestHealthCheck_AllHealthy(t *testing.T) {
	c, w := newContext(http.MethodGet, "/health", nil)
	HealthCheck()(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSwaggerSpec(t *testing.T) {
	SetSwaggerSpec(nil)
	c, w := newContext(http.MethodGet, "/swagger/spec", nil)
	SwaggerSpec(c)
	assert.Equal(t, http.StatusNotFound, w.Code)

	SetSwaggerSpec([]byte("openapi: 3.0.3\n"))
	defer SetSwaggerSpec(nil)
	c, w = newContext(http.MethodGet, "/swagger/spec", nil)
	SwaggerSpec(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "openapi")

	c, w = newContext(http.MethodGet, "/swagger", nil)
	SwaggerUI(c)
	assert.Contains(t, w.Body.String(), "Wallet Ledger API")
}
