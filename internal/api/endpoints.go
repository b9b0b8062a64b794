package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Ritesh010/admin/internal/models"
)

// Login exchanges credentials for a session. The endpoint reports success
// through a message discriminator as well as the status code; both are
// checked before the token is trusted.
func (c *Client) Login(ctx context.Context, username, password string) (*models.Session, error) {
	raw, err := c.do(ctx, http.MethodPost, "/admin/login", models.LoginRequest{
		Username: username,
		Password: password,
	}, "")
	if err != nil {
		return nil, err
	}

	var resp models.LoginResponse
	if err := decode(raw, &resp); err != nil {
		return nil, err
	}
	if resp.Message != "Admin login successful" {
		return nil, ErrLoginRejected
	}

	return &models.Session{
		Token:     resp.AdminToken,
		FirstName: resp.Admin.FirstName,
		LastName:  resp.Admin.LastName,
		Username:  resp.Admin.Username,
	}, nil
}

func (c *Client) ChangePassword(ctx context.Context, token string, req models.ChangePasswordRequest) (*models.MessageResponse, error) {
	raw, err := c.do(ctx, http.MethodPost, "/admin/change-password", req, token)
	if err != nil {
		return nil, err
	}
	var resp models.MessageResponse
	if err := decode(raw, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DashboardOverview returns the dashboard metrics as an arbitrarily nested
// object; the view layer flattens it into dot-joined paths.
func (c *Client) DashboardOverview(ctx context.Context, token string) (map[string]any, error) {
	var data map[string]any
	if err := c.get(ctx, "/admin/dashboard/overview", token, &data); err != nil {
		return nil, err
	}
	return data, nil
}

func (c *Client) ListOrders(ctx context.Context, token string) ([]models.Order, error) {
	var list models.OrderList
	if err := c.get(ctx, "/orders/admin/all", token, &list); err != nil {
		return nil, err
	}
	return list.Orders, nil
}

func (c *Client) OrderAnalytics(ctx context.Context, token string) (map[string]any, error) {
	var data map[string]any
	if err := c.get(ctx, "/orders/admin/analytics", token, &data); err != nil {
		return nil, err
	}
	return data, nil
}

func (c *Client) GetOrder(ctx context.Context, token string, orderID int64) (*models.Order, error) {
	var order models.Order
	if err := c.get(ctx, fmt.Sprintf("/orders/%d", orderID), token, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, token string, orderID int64, status models.OrderStatus) error {
	_, err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/orders/%d/status", orderID),
		models.StatusUpdateRequest{Status: status}, token)
	return err
}

func (c *Client) ListProducts(ctx context.Context, token string) ([]models.Product, error) {
	var list models.ProductList
	if err := c.get(ctx, "/products/admin/all?include_inactive=true", token, &list); err != nil {
		return nil, err
	}
	return list.Products, nil
}

// GetProduct is anonymous: the product detail endpoint serves the storefront
// too and takes no bearer token.
func (c *Client) GetProduct(ctx context.Context, productID int64) (*models.Product, error) {
	var product models.Product
	if err := c.get(ctx, fmt.Sprintf("/products/%d", productID), "", &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct posts metadata only. The server assigns the product ID used
// by the follow-up image upload.
func (c *Client) CreateProduct(ctx context.Context, token string, payload models.ProductPayload) (*models.Product, error) {
	raw, err := c.do(ctx, http.MethodPost, "/products", payload, token)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Product models.Product `json:"product"`
	}
	if err := decode(raw, &resp); err != nil {
		return nil, err
	}
	return &resp.Product, nil
}

func (c *Client) UpdateProduct(ctx context.Context, token string, productID int64, payload models.ProductPayload) error {
	_, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/products/%d", productID), payload, token)
	return err
}

func (c *Client) DeleteProduct(ctx context.Context, token string, productID int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", productID), nil, token)
	return err
}

func (c *Client) FlipProductStatus(ctx context.Context, token string, productID int64) error {
	_, err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/products/%d/flip-status", productID), nil, token)
	return err
}

// AddProductImages submits the full ordered batch in one call.
func (c *Client) AddProductImages(ctx context.Context, token string, productID int64, images []models.ImageUpload) error {
	_, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/products/%d/images", productID),
		models.ImageUploadRequest{Images: images}, token)
	return err
}

// DeleteProductImages removes every stored image; image editing is
// delete-all-then-reupload, never incremental.
func (c *Client) DeleteProductImages(ctx context.Context, token string, productID int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d/images", productID), nil, token)
	return err
}
