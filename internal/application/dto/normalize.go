package dto

import "strings"

// Normalize recorta espacios antes de validar, para que los límites de longitud
// se apliquen sobre el valor que se guarda.

func (r *ProductRequest) Normalize() {
	r.Code = strings.TrimSpace(r.Code)
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	if r.URLImage != nil {
		u := strings.TrimSpace(*r.URLImage)
		r.URLImage = &u
		if u == "" {
			r.URLImage = nil
		}
	}
}

func (r *CreateSaleRequest) Normalize() {
	r.PaymentMethod = strings.TrimSpace(r.PaymentMethod)
	for i := range r.Items {
		r.Items[i].Cod = strings.TrimSpace(r.Items[i].Cod)
		r.Items[i].NameProduct = strings.TrimSpace(r.Items[i].NameProduct)
	}
}

func (r *CreateUserRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.StoreName = strings.TrimSpace(r.StoreName)
	r.Email = NormalizeEmail(r.Email)
}

func (r *UpdateUserRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.StoreName = strings.TrimSpace(r.StoreName)
	r.Email = NormalizeEmail(r.Email)
}

func (r *LoginRequest) Normalize() {
	r.Email = NormalizeEmail(r.Email)
}

// NormalizeEmail e-mails se comparan y guardan en minúsculas.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
