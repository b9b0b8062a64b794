package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Ritesh010/admin/internal/api"
	"github.com/Ritesh010/admin/internal/middleware"
	"github.com/Ritesh010/admin/internal/models"
	"github.com/Ritesh010/admin/internal/services"
	"github.com/Ritesh010/admin/internal/session"
	"github.com/Ritesh010/admin/internal/views"
)

const maxImageUploadBytes = 32 << 20

type ProductHandler struct {
	Base

	mu    sync.Mutex
	flows map[string]*services.ProductWorkflow
}

func NewProductHandler(sessions *session.Store, client *api.Client, templates *views.TemplateCache, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		Base: Base{
			Sessions:  sessions,
			API:       client,
			Templates: templates,
			Logger:    logger,
		},
		flows: make(map[string]*services.ProductWorkflow),
	}
}

// workflow returns the session's active product workflow, if any.
func (h *ProductHandler) workflow(r *http.Request) (*services.ProductWorkflow, bool) {
	id, ok := middleware.GetSessionID(r)
	if !ok {
		return nil, false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	flow, ok := h.flows[id]
	return flow, ok
}

func (h *ProductHandler) setWorkflow(r *http.Request, flow *services.ProductWorkflow) {
	id, ok := middleware.GetSessionID(r)
	if !ok {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.flows[id] = flow
}

// EndSession drops any workflow held for a session, together with its
// decoded image bytes. Registered as a session-clear hook and called when a
// workflow completes.
func (h *ProductHandler) EndSession(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.flows, id)
}

func (h *ProductHandler) clearWorkflow(r *http.Request) {
	if id, ok := middleware.GetSessionID(r); ok {
		h.EndSession(id)
	}
}

// ---------------------------------------------------------------------------
// Product list

func (h *ProductHandler) Products(w http.ResponseWriter, r *http.Request) {
	products, err := h.API.ListProducts(r.Context(), h.token(r))
	if err != nil {
		h.Logger.Error().Err(err).Msg("Products fetch failed")
		h.render(w, r, "products.html", map[string]any{
			"Error":    "Failed to load products. Please refresh the page.",
			"Products": []views.ProductRow{},
		})
		return
	}

	h.render(w, r, "products.html", map[string]any{
		"Products": views.ProductRows(products),
	})
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "id")
	if err != nil {
		redirect(w, r, "/products", "", "Invalid product ID.")
		return
	}

	if err := h.API.DeleteProduct(r.Context(), h.token(r), productID); err != nil {
		h.Logger.Error().Err(err).Int64("product_id", productID).Msg("Product delete failed")
		redirect(w, r, "/products", "", "Failed to delete product. It may be associated with existing orders.")
		return
	}

	redirect(w, r, "/products", "Product deleted successfully!", "")
}

func (h *ProductHandler) FlipStatus(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "id")
	if err != nil {
		redirect(w, r, "/products", "", "Invalid product ID.")
		return
	}

	if err := h.API.FlipProductStatus(r.Context(), h.token(r), productID); err != nil {
		h.Logger.Error().Err(err).Int64("product_id", productID).Msg("Product status flip failed")
		redirect(w, r, "/products", "", "Failed to update product status. Please try again.")
		return
	}

	redirect(w, r, "/products", "Product status updated.", "")
}

// ---------------------------------------------------------------------------
// Create flow

func (h *ProductHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	flow, ok := h.workflow(r)
	if !ok || flow.Mode() != services.ModeCreate || flow.State() == services.StateDone {
		flow = services.NewCreateWorkflow(h.Logger)
		h.setWorkflow(r, flow)
	}
	h.renderForm(w, r, flow, services.ProductForm{}, nil)
}

func (h *ProductHandler) CreateDetails(w http.ResponseWriter, r *http.Request) {
	flow, ok := h.workflow(r)
	if !ok || flow.Mode() != services.ModeCreate {
		flow = services.NewCreateWorkflow(h.Logger)
		h.setWorkflow(r, flow)
	}

	form := readProductForm(r)
	payload := services.BuildPayload(form)
	if err := services.Validate(payload); err != nil {
		var vErr *services.ValidationError
		errors.As(err, &vErr)
		h.renderForm(w, r, flow, form, vErr)
		return
	}

	product, err := h.API.CreateProduct(r.Context(), h.token(r), payload)
	if err != nil {
		h.Logger.Error().Err(err).Msg("Product create failed")
		h.renderFormError(w, r, flow, form, "Failed to create product. Please check your input and try again.")
		return
	}

	if err := flow.MarkCreated(product.ProductID); err != nil {
		h.Logger.Warn().Err(err).Msg("Unexpected create transition")
	}
	redirect(w, r, "/products/new", "Product created successfully!", "")
}

// ResetForm clears the form and the pending image selection.
func (h *ProductHandler) ResetForm(w http.ResponseWriter, r *http.Request) {
	flow := services.NewCreateWorkflow(h.Logger)
	h.setWorkflow(r, flow)
	redirect(w, r, "/products/new", "Form data has been reset.", "")
}

// ---------------------------------------------------------------------------
// Edit flow

func (h *ProductHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "id")
	if err != nil {
		redirect(w, r, "/products", "", "Product ID not found in URL.")
		return
	}

	product, err := h.API.GetProduct(r.Context(), productID)
	if err != nil {
		h.Logger.Error().Err(err).Int64("product_id", productID).Msg("Product fetch failed")
		redirect(w, r, "/products", "", "Failed to load product data. Please try again.")
		return
	}

	flow, ok := h.workflow(r)
	fresh := !ok || flow.Mode() != services.ModeEdit || flow.State() == services.StateDone
	if !fresh {
		if id, idErr := flow.ProductID(); idErr != nil || id != productID {
			fresh = true
		}
	}
	if fresh {
		flow = services.NewEditWorkflow(productID, h.Logger)
		h.setWorkflow(r, flow)
		// Stored images become pending files through the same add path as
		// fresh selections, so dedupe applies uniformly.
		if len(product.Images) > 0 {
			added := flow.Pending.RestoreFromBuffers(product.Images)
			h.Logger.Info().Int("added", added).Int64("product_id", productID).Msg("Restored existing images")
		}
	}

	h.renderForm(w, r, flow, productToForm(product), nil)
}

func (h *ProductHandler) UpdateDetails(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "id")
	if err != nil {
		redirect(w, r, "/products", "", "Invalid product ID.")
		return
	}

	flow, ok := h.workflow(r)
	if !ok || flow.Mode() != services.ModeEdit {
		redirect(w, r, fmt.Sprintf("/products/%d/edit", productID), "", "Editing session expired. Please reload the product.")
		return
	}

	form := readProductForm(r)
	payload := services.BuildPayload(form)
	if err := services.Validate(payload); err != nil {
		var vErr *services.ValidationError
		errors.As(err, &vErr)
		h.renderForm(w, r, flow, form, vErr)
		return
	}

	if err := h.API.UpdateProduct(r.Context(), h.token(r), productID, payload); err != nil {
		h.Logger.Error().Err(err).Int64("product_id", productID).Msg("Product update failed")
		h.renderFormError(w, r, flow, form, "Failed to update product. Please check your input and try again.")
		return
	}

	if err := flow.MarkDetailsSaved(); err != nil {
		h.Logger.Warn().Err(err).Msg("Unexpected edit transition")
	}
	redirect(w, r, fmt.Sprintf("/products/%d/edit", productID), "Product updated successfully!", "")
}

// Skip jumps straight to image editing without saving details.
func (h *ProductHandler) Skip(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "id")
	if err != nil {
		redirect(w, r, "/products", "", "Invalid product ID.")
		return
	}

	flow, ok := h.workflow(r)
	if !ok || flow.Mode() != services.ModeEdit {
		redirect(w, r, fmt.Sprintf("/products/%d/edit", productID), "", "Editing session expired. Please reload the product.")
		return
	}

	if err := flow.SkipToImages(); err != nil {
		h.Logger.Warn().Err(err).Msg("Unexpected skip transition")
	}
	redirect(w, r, fmt.Sprintf("/products/%d/edit", productID), "", "")
}

// ---------------------------------------------------------------------------
// Image selection

// AddImages appends newly chosen files to the pending selection. Existing
// selections are kept; non-images and duplicates are skipped with a notice.
func (h *ProductHandler) AddImages(w http.ResponseWriter, r *http.Request) {
	flow, ok := h.workflow(r)
	if !ok {
		redirect(w, r, "/products", "", "No product workflow in progress.")
		return
	}

	if err := r.ParseMultipartForm(maxImageUploadBytes); err != nil {
		redirect(w, r, h.formURL(flow), "", "Failed to read uploaded files.")
		return
	}

	var notices []string
	for _, header := range r.MultipartForm.File["images"] {
		file, err := header.Open()
		if err != nil {
			notices = append(notices, fmt.Sprintf("File %q could not be read.", header.Filename))
			continue
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			notices = append(notices, fmt.Sprintf("File %q could not be read.", header.Filename))
			continue
		}

		addErr := flow.Pending.Add(services.ImageFile{
			Name: header.Filename,
			MIME: header.Header.Get("Content-Type"),
			Data: data,
		})
		var rejection *services.RejectionError
		if errors.As(addErr, &rejection) {
			notices = append(notices, "File "+rejection.Error()+".")
		}
	}

	redirect(w, r, h.formURL(flow), strings.Join(notices, " "), "")
}

func (h *ProductHandler) RemoveImage(w http.ResponseWriter, r *http.Request) {
	flow, ok := h.workflow(r)
	if !ok {
		redirect(w, r, "/products", "", "No product workflow in progress.")
		return
	}

	index, err := strconv.Atoi(r.FormValue("index"))
	if err != nil || flow.Pending.Remove(index) != nil {
		redirect(w, r, h.formURL(flow), "", "Invalid image selection.")
		return
	}

	redirect(w, r, h.formURL(flow), "Image removed from selection.", "")
}

func (h *ProductHandler) ClearImages(w http.ResponseWriter, r *http.Request) {
	flow, ok := h.workflow(r)
	if !ok {
		redirect(w, r, "/products", "", "No product workflow in progress.")
		return
	}

	flow.Pending.Clear()
	redirect(w, r, h.formURL(flow), "Image selection cleared.", "")
}

// UploadImages pushes the pending selection to the server. In edit mode the
// stored images are deleted first: replacement is all-or-nothing, never
// incremental.
func (h *ProductHandler) UploadImages(w http.ResponseWriter, r *http.Request) {
	flow, ok := h.workflow(r)
	if !ok {
		redirect(w, r, "/products", "", "No product workflow in progress.")
		return
	}

	if flow.Pending.Len() == 0 {
		redirect(w, r, h.formURL(flow), "", "Please select at least one image to upload.")
		return
	}

	productID, err := flow.ProductID()
	if err != nil {
		redirect(w, r, h.formURL(flow), "", "Product ID not found. Please create the product first.")
		return
	}

	images, err := flow.Pending.BuildUploadPayload(r.Context())
	if err != nil {
		h.Logger.Error().Err(err).Msg("Image conversion failed")
		redirect(w, r, h.formURL(flow), "", "Failed to prepare images for upload.")
		return
	}

	token := h.token(r)
	if flow.Mode() == services.ModeEdit {
		if err := h.API.DeleteProductImages(r.Context(), token, productID); err != nil {
			h.Logger.Error().Err(err).Int64("product_id", productID).Msg("Image delete failed")
			redirect(w, r, h.formURL(flow), "", "Failed to update images. Please try again.")
			return
		}
	}

	if err := h.API.AddProductImages(r.Context(), token, productID, images); err != nil {
		h.Logger.Error().Err(err).Int64("product_id", productID).Msg("Image upload failed")
		redirect(w, r, h.formURL(flow), "", "Failed to upload images. Please try again.")
		return
	}

	flow.Pending.Clear()
	if err := flow.MarkImagesUploaded(); err != nil {
		h.Logger.Warn().Err(err).Msg("Unexpected upload transition")
	}
	h.clearWorkflow(r)

	redirect(w, r, "/products", fmt.Sprintf("Successfully uploaded %d image(s)!", len(images)), "")
}

// ---------------------------------------------------------------------------
// Form rendering

func (h *ProductHandler) formURL(flow *services.ProductWorkflow) string {
	if flow.Mode() == services.ModeEdit {
		if id, err := flow.ProductID(); err == nil {
			return fmt.Sprintf("/products/%d/edit", id)
		}
	}
	return "/products/new"
}

func (h *ProductHandler) renderForm(w http.ResponseWriter, r *http.Request, flow *services.ProductWorkflow, form services.ProductForm, vErr *services.ValidationError) {
	data := map[string]any{
		"IsEdit":         flow.Mode() == services.ModeEdit,
		"ShowDetails":    !flow.ImagesPhase() && flow.State() != services.StateDone,
		"ShowImages":     flow.ImagesPhase(),
		"PrimaryLabel":   flow.PrimaryLabel(),
		"SecondaryLabel": flow.SecondaryLabel(),
		"Form":           form,
		"AttrRows":       attrRowsFromForm(form),
		"Pending":        views.PendingImages(flow.Pending),
		"DetailsAction":  h.formURL(flow),
		"ResetAction":    "/products/new/reset",
	}

	if id, err := flow.ProductID(); err == nil {
		data["ProductID"] = id
		if flow.Mode() == services.ModeEdit && flow.State() == services.StateViewingDetails {
			data["SkipAction"] = fmt.Sprintf("/products/%d/skip", id)
		}
	}
	if vErr != nil {
		data["Error"] = vErr.Message
	}

	h.render(w, r, "product_form.html", data)
}

func (h *ProductHandler) renderFormError(w http.ResponseWriter, r *http.Request, flow *services.ProductWorkflow, form services.ProductForm, msg string) {
	h.renderForm(w, r, flow, form, &services.ValidationError{Field: "", Message: msg})
}

func readProductForm(r *http.Request) services.ProductForm {
	return services.ProductForm{
		Name:          r.FormValue("name"),
		Description:   r.FormValue("description"),
		Price:         r.FormValue("price"),
		CostPrice:     r.FormValue("cost_price"),
		StockQuantity: r.FormValue("stock_quantity"),
		MinStockLevel: r.FormValue("min_stock_level"),
		Weight:        r.FormValue("weight"),
		Dimensions:    r.FormValue("dimensions"),
		AttributeKeys: r.Form["attribute_keys"],
		AttributeVals: r.Form["attribute_values"],
	}
}

// productToForm turns a stored product back into editable form values.
func productToForm(p *models.Product) services.ProductForm {
	form := services.ProductForm{
		Name:          p.Name,
		Description:   p.Description,
		Price:         trimFloat(p.Price),
		CostPrice:     trimFloat(p.CostPrice),
		StockQuantity: strconv.Itoa(p.StockQuantity),
		MinStockLevel: strconv.Itoa(p.MinStockLevel),
		Weight:        trimFloat(p.Weight),
		Dimensions: fmt.Sprintf("%s,%s,%s",
			trimFloat(p.Dimensions.Length), trimFloat(p.Dimensions.Width), trimFloat(p.Dimensions.Height)),
	}
	for _, row := range views.FormAttrRows(p.Attributes) {
		form.AttributeKeys = append(form.AttributeKeys, row.Key)
		form.AttributeVals = append(form.AttributeVals, row.Value)
	}
	return form
}

func attrRowsFromForm(form services.ProductForm) []views.AttrRow {
	var rows []views.AttrRow
	n := len(form.AttributeKeys)
	if len(form.AttributeVals) < n {
		n = len(form.AttributeVals)
	}
	for i := 0; i < n; i++ {
		rows = append(rows, views.AttrRow{Key: form.AttributeKeys[i], Value: form.AttributeVals[i]})
	}
	if len(rows) == 0 {
		rows = append(rows, views.AttrRow{})
	}
	return rows
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
