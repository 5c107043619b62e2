package handlers

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chitramadarakhandi/minimart/internal/models"
	"github.com/chitramadarakhandi/minimart/internal/store"
	"github.com/google/uuid"
	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
	"github.com/nfnt/resize"
)

type AdminHandler struct {
	Store        *store.Store
	SessionStore *sessions.CookieStore
	Templates    *TemplateCache
	UploadDir    string
}

var allowedImageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Store.GetDashboardStats()
	if err != nil {
		http.Error(w, "Error fetching stats", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("admin_dashboard.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, sessionName)
	ident, _ := currentIdentity(session)
	data := map[string]interface{}{
		"Stats":    stats,
		"Flashes":  GetFlash(session),
		"Identity": ident,
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// ManageProducts lists everything newest first, with delete buttons.
func (h *AdminHandler) ManageProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Store.GetRecentProducts()
	if err != nil {
		http.Error(w, "Error fetching products", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("admin_products.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, sessionName)
	ident, _ := currentIdentity(session)
	data := map[string]interface{}{
		"Products":  products,
		"Flashes":   GetFlash(session),
		"Identity":  ident,
		"CsrfField": csrf.TemplateField(r),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *AdminHandler) AddProductForm(w http.ResponseWriter, r *http.Request) {
	tmpl := h.Templates.Get("admin_add_product.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, sessionName)
	ident, _ := currentIdentity(session)
	data := map[string]interface{}{
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
		"Identity":  ident,
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)

	if err := r.ParseMultipartForm(10 << 20); err != nil { // 10MB
		session.AddFlash(FlashMessage{Type: "error", Message: "File too large. Max 10MB."})
		session.Save(r, w)
		http.Redirect(w, r, "/admin/products/new", http.StatusSeeOther)
		return
	}

	form, err := parseProductForm(r)
	if err != nil {
		for _, msg := range formErrorMessages(err) {
			session.AddFlash(FlashMessage{Type: "error", Message: msg})
		}
		session.Save(r, w)
		http.Redirect(w, r, "/admin/products/new", http.StatusSeeOther)
		return
	}

	// The image is optional; a product without one just renders a
	// placeholder.
	var imagePath string
	file, header, fileErr := r.FormFile("image")
	if fileErr == nil {
		defer file.Close()
		imagePath, err = h.saveProductImage(file, header.Filename)
		if err != nil {
			session.AddFlash(FlashMessage{Type: "error", Message: err.Error()})
			session.Save(r, w)
			http.Redirect(w, r, "/admin/products/new", http.StatusSeeOther)
			return
		}
	}

	product := &models.Product{
		Name:        form.Name,
		Category:    form.Category,
		Description: form.Description,
		Price:       form.Price,
		StockQty:    form.StockQty,
		ImagePath:   imagePath,
	}
	if err := h.Store.CreateProduct(product); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error: " + err.Error()})
		session.Save(r, w)
		http.Redirect(w, r, "/admin/products/new", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Product added"})
	session.Save(r, w)
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

// saveProductImage writes the upload under the configured directory with
// a uuid filename, after checking the extension allow-list. PNG and JPEG
// uploads are resized to max width 800 and re-encoded as JPEG; GIFs are
// stored untouched. Returns the stored filename.
func (h *AdminHandler) saveProductImage(file multipart.File, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedImageExts[ext] {
		return "", fmt.Errorf("unsupported image format, allowed: png, jpg, jpeg, gif")
	}

	if err := os.MkdirAll(h.UploadDir, 0o755); err != nil {
		return "", fmt.Errorf("error preparing upload directory")
	}

	if ext == ".gif" {
		filename := uuid.New().String() + ".gif"
		out, err := os.Create(filepath.Join(h.UploadDir, filename))
		if err != nil {
			return "", fmt.Errorf("error saving image file")
		}
		defer out.Close()
		if _, err := io.Copy(out, file); err != nil {
			return "", fmt.Errorf("error saving image file")
		}
		return filename, nil
	}

	var img image.Image
	var err error
	if ext == ".png" {
		img, err = png.Decode(file)
	} else {
		img, err = jpeg.Decode(file)
	}
	if err != nil {
		return "", fmt.Errorf("failed to decode image")
	}

	resized := resize.Resize(800, 0, img, resize.Lanczos3)
	filename := uuid.New().String() + ".jpg"
	out, err := os.Create(filepath.Join(h.UploadDir, filename))
	if err != nil {
		return "", fmt.Errorf("error saving image file")
	}
	defer out.Close()
	if err := jpeg.Encode(out, resized, &jpeg.Options{Quality: 80}); err != nil {
		return "", fmt.Errorf("error encoding image")
	}
	return filename, nil
}

func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)

	id, err := strconv.Atoi(r.FormValue("id"))
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid ID."})
		session.Save(r, w)
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
		return
	}

	// Order lines referencing the product keep their rows; nothing
	// guards the reference.
	if err := h.Store.DeleteProduct(id); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error: " + err.Error()})
		session.Save(r, w)
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
		return
	}

	slog.Info("Product deleted", "product_id", id)
	session.AddFlash(FlashMessage{Type: "info", Message: "Product deleted"})
	session.Save(r, w)
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}
