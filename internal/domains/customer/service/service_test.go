package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"hotelier/config"
	"hotelier/infras/otel/mocks"
	customerMocks "hotelier/internal/domains/customer/mocks"
	"hotelier/internal/domains/customer/model"
	"hotelier/internal/domains/customer/model/dto"
	"hotelier/internal/domains/customer/service"
	cacheMocks "hotelier/shared/cache/mocks"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
)

func newCustomerService(t *testing.T) (service.Customer, *customerMocks.MockCustomer, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := customerMocks.NewMockCustomer(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	return svc, mockRepo, mockCache
}

func TestCustomerService_Create(t *testing.T) {
	req := dto.CreateCustomerRequest{
		FullName: "Jane Roe",
		Email:    "Jane.Roe@Example.com",
		Password: "s3cret-pass",
	}

	tests := []struct {
		name      string
		setupMock func(repo *customerMocks.MockCustomer, cache *cacheMocks.MockRedisCache)
		wantErr   bool
		wantKind  string
		wantID    int64
	}{
		{
			name: "successful creation stores lowercased email and a hash",
			setupMock: func(repo *customerMocks.MockCustomer, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, m model.Customer) (int64, error) {
						assert.Equal(t, "jane.roe@example.com", m.Email)
						assert.NotEqual(t, "s3cret-pass", m.Password)
						assert.Equal(t, model.StatusActive, m.Status)
						return int64(3), nil
					})

				cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
			wantID:  3,
		},
		{
			name: "duplicate email",
			setupMock: func(repo *customerMocks.MockCustomer, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantKind: failure.KindConflict,
		},
		{
			name: "repository error",
			setupMock: func(repo *customerMocks.MockCustomer, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(int64(0), errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, mockCache := newCustomerService(t)
			tt.setupMock(mockRepo, mockCache)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserEmail, "admin@example.com")
			id, err := svc.Create(ctx, req)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantKind != "" {
					assert.Equal(t, tt.wantKind, failure.GetKind(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantID, id)
			}
		})
	}
}

func TestCustomerService_GetByEmail(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		setupMock func(repo *customerMocks.MockCustomer)
		wantErr   bool
	}{
		{
			name:  "found, lookup is case-insensitive",
			email: "JANE.ROE@EXAMPLE.COM",
			setupMock: func(repo *customerMocks.MockCustomer) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, filter gDto.FilterGroup, _ ...string) (model.Customer, error) {
						where, args := filter.GetWhereClause()
						assert.Contains(t, where, model.FieldEmail)
						assert.Equal(t, "jane.roe@example.com", args[model.FieldEmail])
						return model.Customer{ID: 3, Email: "jane.roe@example.com"}, nil
					})
			},
			wantErr: false,
		},
		{
			name:  "not found",
			email: "nobody@example.com",
			setupMock: func(repo *customerMocks.MockCustomer) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Customer{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, _ := newCustomerService(t)
			tt.setupMock(mockRepo)

			res, err := svc.GetByEmail(context.Background(), tt.email)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, failure.KindNotFound, failure.GetKind(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, int64(3), res.ID)
			}
		})
	}
}

func TestCustomerService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *customerMocks.MockCustomer, cache *cacheMocks.MockRedisCache)
		wantErr   bool
	}{
		{
			name: "soft delete bans the customer",
			setupMock: func(repo *customerMocks.MockCustomer, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Customer{ID: 3, Status: model.StatusActive}, nil)

				repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, model.StatusBanned, fields[model.FieldStatus])
						return nil
					})

				cache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "customer not found",
			setupMock: func(repo *customerMocks.MockCustomer, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Customer{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, mockCache := newCustomerService(t)
			tt.setupMock(mockRepo, mockCache)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserEmail, "admin@example.com")
			err := svc.Delete(ctx, 3)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, failure.KindNotFound, failure.GetKind(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCustomerService_Update(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.UpdateCustomerRequest
		setupMock func(repo *customerMocks.MockCustomer, cache *cacheMocks.MockRedisCache)
		wantErr   bool
	}{
		{
			name:      "empty update request",
			req:       dto.UpdateCustomerRequest{},
			setupMock: func(repo *customerMocks.MockCustomer, cache *cacheMocks.MockRedisCache) {},
			wantErr:   true,
		},
		{
			name: "successful update",
			req:  dto.UpdateCustomerRequest{FullName: "Jane R. Roe"},
			setupMock: func(repo *customerMocks.MockCustomer, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				cache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, mockCache := newCustomerService(t)
			tt.setupMock(mockRepo, mockCache)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserEmail, "admin@example.com")
			err := svc.Update(ctx, tt.req, 3)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
