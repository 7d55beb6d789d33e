package handlers

import (
	"net/http"

	"blogicum/internal/middleware"
	"blogicum/internal/models"
	"blogicum/internal/service"
)

type registerForm struct {
	Username  string `validate:"required,max=150"`
	FirstName string `validate:"omitempty,alpha"`
	LastName  string `validate:"omitempty,alpha"`
	Email     string `validate:"omitempty,email"`
	Password  string `validate:"required,min=8"`
}

type loginForm struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

func (h *Handlers) setSessionCookie(w http.ResponseWriter, user *models.User) error {
	token, err := h.AuthService.GenerateAccessToken(user)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.Cfg.AccessTokenDuration.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		h.render(w, "register", map[string]interface{}{
			"Errors":     map[string]string{},
			"FormValues": map[string]string{},
		})
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	form := registerForm{
		Username:  r.FormValue("username"),
		FirstName: r.FormValue("first_name"),
		LastName:  r.FormValue("last_name"),
		Email:     r.FormValue("email"),
		Password:  r.FormValue("password"),
	}

	if err := h.Validate.Struct(form); err != nil {
		h.render(w, "register", map[string]interface{}{
			"Errors": formErrors(err),
			"FormValues": map[string]string{
				"Username":  form.Username,
				"FirstName": form.FirstName,
				"LastName":  form.LastName,
				"Email":     form.Email,
			},
		})
		return
	}

	user, err := h.AuthService.Register(r.Context(), service.RegisterRequest{
		Username:  form.Username,
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
		Password:  form.Password,
	})
	if err != nil {
		h.render(w, "register", map[string]interface{}{
			"Errors": map[string]string{"Username": "This username is not available"},
			"FormValues": map[string]string{
				"Username":  form.Username,
				"FirstName": form.FirstName,
				"LastName":  form.LastName,
				"Email":     form.Email,
			},
		})
		return
	}

	if err = h.setSessionCookie(w, user); err != nil {
		h.ServerError(w, err)
		return
	}

	http.Redirect(w, r, "/profile/"+user.Username+"/", http.StatusSeeOther)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		h.render(w, "login", map[string]interface{}{
			"Errors":     map[string]string{},
			"FormValues": map[string]string{},
		})
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	form := loginForm{
		Username: r.FormValue("username"),
		Password: r.FormValue("password"),
	}

	if err := h.Validate.Struct(form); err != nil {
		h.render(w, "login", map[string]interface{}{
			"Errors":     formErrors(err),
			"FormValues": map[string]string{"Username": form.Username},
		})
		return
	}

	_, token, err := h.AuthService.Login(r.Context(), form.Username, form.Password)
	if err != nil {
		h.render(w, "login", map[string]interface{}{
			"Errors":     map[string]string{"Form": "Wrong username or password"},
			"FormValues": map[string]string{"Username": form.Username},
		})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.Cfg.AccessTokenDuration.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
