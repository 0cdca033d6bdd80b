package client

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	categorydomain "github.com/smallbiznis/backoffice/internal/category/domain"
	productdomain "github.com/smallbiznis/backoffice/internal/product/domain"
	"go.uber.org/zap"
)

// ProductListPath is where the product form lands after a successful create.
const ProductListPath = "/product"

// ProductFields are the editable inputs of the add-product form.
type ProductFields struct {
	NameEn     string `json:"nameEn" validate:"required"`
	NameKh     string `json:"nameKh" validate:"required"`
	CategoryID string `json:"categoryId" validate:"required"`
	SKU        string `json:"sku" validate:"required"`
}

var productFieldMessages = map[string]string{
	"nameEn":     "English name is required",
	"nameKh":     "Khmer name is required",
	"categoryId": "Category is required",
	"sku":        "SKU is required",
}

// FieldErrors maps a form field to its message.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+e[field])
	}
	return strings.Join(parts, "; ")
}

var productValidator = newProductValidator()

func newProductValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ProductForm holds the state of the add-product screen. It is driven by one
// operator and is not safe for concurrent use.
type ProductForm struct {
	Fields     ProductFields
	Image      *File
	Categories []categorydomain.Response
	Errors     FieldErrors
	Loading    bool

	client           *Client
	nav              Navigator
	notify           Notifier
	log              *zap.Logger
	categoriesLoaded bool
}

func NewProductForm(c *Client, nav Navigator, notify Notifier) *ProductForm {
	if nav == nil {
		nav = nopNavigator{}
	}
	if notify == nil {
		notify = nopNotifier{}
	}
	return &ProductForm{
		client: c,
		nav:    nav,
		notify: notify,
		log:    c.log.Named("product_form"),
	}
}

// LoadCategories fills the category picker. Once it has succeeded further
// calls do not hit the network.
func (f *ProductForm) LoadCategories(ctx context.Context) error {
	if f.categoriesLoaded {
		return nil
	}

	categories, err := f.client.ListCategories(ctx)
	if err != nil {
		f.log.Warn("fetch categories failed", zap.Error(err))
		f.notify.Error("Failed to fetch categories.")
		return err
	}
	f.Categories = categories
	f.categoriesLoaded = true
	return nil
}

// Validate records and returns the missing required fields, or nil.
func (f *ProductForm) Validate() FieldErrors {
	f.Errors = nil

	err := productValidator.Struct(f.Fields)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		f.Errors = FieldErrors{"form": err.Error()}
		return f.Errors
	}

	out := FieldErrors{}
	for _, fe := range verrs {
		msg, ok := productFieldMessages[fe.Field()]
		if !ok {
			msg = fe.Field() + " is invalid"
		}
		out[fe.Field()] = msg
	}
	f.Errors = out
	return out
}

// Submit validates, uploads the optional image under "image", and creates the
// product. Only a confirmed create clears the form and navigates away.
func (f *ProductForm) Submit(ctx context.Context) (*productdomain.Response, error) {
	if errs := f.Validate(); errs != nil {
		return nil, errs
	}

	f.Loading = true
	defer func() { f.Loading = false }()

	var image *string
	if f.Image != nil {
		res, err := f.client.Upload(ctx, "image", *f.Image)
		if err != nil {
			f.log.Warn("image upload failed", zap.Error(err))
			f.notify.Error("Failed to upload image.")
			return nil, err
		}
		f.notify.Success("Image uploaded successfully.")
		if url := strings.TrimSpace(res.URL); url != "" {
			image = &url
		}
	}

	product, err := f.client.CreateProduct(ctx, ProductRequest{
		NameEn:     f.Fields.NameEn,
		NameKh:     f.Fields.NameKh,
		CategoryID: f.Fields.CategoryID,
		SKU:        f.Fields.SKU,
		Image:      image,
	})
	if err != nil {
		f.log.Warn("create product failed", zap.Error(err))
		f.notify.Error(fmt.Sprintf("Failed to add product: %s", failureMessage(err)))
		return nil, err
	}

	f.notify.Success("New product added successfully.")
	f.Fields = ProductFields{}
	f.Image = nil
	f.nav.Replace(ProductListPath)
	return product, nil
}

func failureMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	return "An unexpected error occurred."
}
