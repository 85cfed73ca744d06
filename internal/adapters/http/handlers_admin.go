package web

import (
	"errors"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"kingdomstudio/internal/adapters/http/middleware"
	"kingdomstudio/internal/domain/blogpost"
	"kingdomstudio/internal/domain/credential"
	"kingdomstudio/internal/domain/settings"
)

var errPasswordMismatch = errors.New("passwords do not match")

const dashboardTitle = "Admin Dashboard"

// handleAdmin shows the dashboard to an admin and the login form to anyone else.
func (s *Server) handleAdmin(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetSessionFromContext(r.Context()); !ok {
		s.render(w, r, http.StatusOK, "admin_login.html", &pageData{Title: "Admin Login"})
		return
	}
	data := &pageData{Title: dashboardTitle}
	if section := r.URL.Query().Get("saved"); section != "" {
		data.Notice = "Saved " + section + "."
	}
	s.render(w, r, http.StatusOK, "admin_dashboard.html", data)
}

// handleLogin checks the admin credential and opens a browser session.
// POST: on success the session cookie is set and the controller is Authenticated
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	username := r.PostForm.Get("username")
	if !s.site.Login(r.Context(), username, r.PostForm.Get("password")) {
		s.render(w, r, http.StatusUnauthorized, "admin_login.html", &pageData{
			Title: "Admin Login",
			Error: "Invalid username or password.",
			Form:  map[string][]string{"username": {username}},
		})
		return
	}

	token, err := s.sessions.Create(r.Context(), credential.Username)
	if err != nil {
		s.internalError(w, err)
		return
	}
	middleware.SetSessionCookie(w, token, s.secure)
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// handleLogout ends the browser session and the controller session.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil && cookie.Value != "" {
		if err := s.sessions.Delete(r.Context(), cookie.Value); err != nil {
			s.logger.Warn("session_event", zap.String("event", "session_delete_failed"), zap.Error(err))
		}
	}
	middleware.ClearSessionCookie(w, s.secure)
	s.site.Logout(r.Context())
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// parseAdminForm accepts both urlencoded and multipart bodies.
func parseAdminForm(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	var err error
	if mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); mediaType == "multipart/form-data" {
		err = r.ParseMultipartForm(maxFormBytes)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return false
	}
	return true
}

// finish redirects back to the dashboard section or re-renders it with the error.
func (s *Server) finish(w http.ResponseWriter, r *http.Request, op, section string, err error) {
	if err != nil {
		s.logWriteFailure(op, err)
		s.render(w, r, statusFor(err), "admin_dashboard.html", &pageData{
			Title: dashboardTitle,
			Error: userMessage(err),
			Form:  r.PostForm,
		})
		return
	}
	http.Redirect(w, r, "/admin?saved="+section+"#"+section, http.StatusSeeOther)
}

func (s *Server) handleCreateBusiness(w http.ResponseWriter, r *http.Request) {
	if !parseAdminForm(w, r) {
		return
	}
	logo, err := logoUpload.read(r)
	if err == nil {
		_, err = s.site.AddBusiness(r.Context(), businessFromForm(r.PostForm, logo))
	}
	s.finish(w, r, "create_business", "businesses", err)
}

func (s *Server) handleUpdateBusiness(w http.ResponseWriter, r *http.Request) {
	if !parseAdminForm(w, r) {
		return
	}
	logo, err := logoUpload.read(r)
	if err == nil {
		err = s.site.UpdateBusiness(r.Context(), chi.URLParam(r, "id"), businessPatchFromForm(r.PostForm, logo))
	}
	s.finish(w, r, "update_business", "businesses", err)
}

func (s *Server) handleDeleteBusiness(w http.ResponseWriter, r *http.Request) {
	err := s.site.RemoveBusiness(r.Context(), chi.URLParam(r, "id"))
	s.finish(w, r, "delete_business", "businesses", err)
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	if !parseAdminForm(w, r) {
		return
	}
	image, err := postImageUpload.read(r)
	var post blogpost.BlogPost
	if err == nil {
		post, err = postFromForm(r.PostForm, s.now(), image)
	}
	if err == nil {
		_, err = s.site.AddBlogPost(r.Context(), post)
	}
	s.finish(w, r, "create_post", "posts", err)
}

func (s *Server) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	if !parseAdminForm(w, r) {
		return
	}
	image, err := postImageUpload.read(r)
	var patch blogpost.Patch
	if err == nil {
		patch, err = postPatchFromForm(r.PostForm, image)
	}
	if err == nil {
		err = s.site.UpdateBlogPost(r.Context(), chi.URLParam(r, "id"), patch)
	}
	s.finish(w, r, "update_post", "posts", err)
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	err := s.site.RemoveBlogPost(r.Context(), chi.URLParam(r, "id"))
	s.finish(w, r, "delete_post", "posts", err)
}

func (s *Server) handleUpdateProgram(w http.ResponseWriter, r *http.Request) {
	if !parseAdminForm(w, r) {
		return
	}
	err := s.site.UpdateProgram(r.Context(), chi.URLParam(r, "id"), programPatchFromForm(r.PostForm))
	s.finish(w, r, "update_program", "programs", err)
}

func (s *Server) handleDeleteRegistration(w http.ResponseWriter, r *http.Request) {
	err := s.site.RemoveRegistration(r.Context(), chi.URLParam(r, "id"))
	s.finish(w, r, "delete_registration", "registrations", err)
}

func (s *Server) handleUpdatePrice(w http.ResponseWriter, r *http.Request) {
	if !parseAdminForm(w, r) {
		return
	}
	price, err := settings.ParsePrice(r.PostForm.Get("price"))
	if err == nil {
		err = s.site.UpdateRegistrationPrice(r.Context(), price)
	}
	s.finish(w, r, "update_price", "settings", err)
}

func (s *Server) handleUpdateContactInfo(w http.ResponseWriter, r *http.Request) {
	if !parseAdminForm(w, r) {
		return
	}
	err := s.site.UpdateContactInfo(r.Context(), contactInfoFromForm(r.PostForm))
	s.finish(w, r, "update_contact_info", "settings", err)
}

func (s *Server) handleUpdateSocialLinks(w http.ResponseWriter, r *http.Request) {
	if !parseAdminForm(w, r) {
		return
	}
	err := s.site.UpdateSocialMediaLinks(r.Context(), socialLinksFromForm(r.PostForm))
	s.finish(w, r, "update_social_links", "settings", err)
}

// handleUpdatePassword replaces the admin password. The plaintext is
// never echoed back into the form.
func (s *Server) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	if !parseAdminForm(w, r) {
		return
	}
	password := r.PostForm.Get("password")
	var err error
	if password != r.PostForm.Get("confirmPassword") {
		err = errPasswordMismatch
	} else {
		err = s.site.UpdateAdminPassword(r.Context(), password)
	}
	r.PostForm.Del("password")
	r.PostForm.Del("confirmPassword")
	s.finish(w, r, "update_admin_password", "settings", err)
}
