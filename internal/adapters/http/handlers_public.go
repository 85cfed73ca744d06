package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "home.html", &pageData{Title: "Kingdom Business Studio"})
}

func (s *Server) handleRegisterForm(w http.ResponseWriter, r *http.Request) {
	data := &pageData{Title: "Program Registration"}
	if r.URL.Query().Get("submitted") == "1" {
		data.Notice = "Registration Successful!"
	}
	s.render(w, r, http.StatusOK, "register.html", data)
}

// handleRegisterSubmit stores a visitor registration.
// PRE: none, visitors need no session
// POST: redirects to the thank-you view, or re-renders with field errors
func (s *Server) handleRegisterSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	reg := registrationFromForm(r.PostForm)
	if _, err := s.site.AddRegistration(r.Context(), reg); err != nil {
		s.logWriteFailure("create_registration", err)
		data := &pageData{
			Title:  "Program Registration",
			Form:   r.PostForm,
			Fields: fieldErrors(err),
		}
		if data.Fields == nil {
			data.Error = userMessage(err)
		} else {
			data.Error = "Please correct the highlighted fields."
		}
		s.render(w, r, statusFor(err), "register.html", data)
		return
	}
	http.Redirect(w, r, "/register?submitted=1", http.StatusSeeOther)
}

func (s *Server) handleContactForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "contact.html", &pageData{Title: "Contact Us"})
}

// handleContactSubmit composes the message and hands it to the mail
// transport; the page also offers the draft as a mailto link.
func (s *Server) handleContactSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	draft, err := s.site.SendContactMessage(contactMessageFromForm(r.PostForm))
	if err != nil {
		s.render(w, r, http.StatusUnprocessableEntity, "contact.html", &pageData{
			Title: "Contact Us",
			Form:  r.PostForm,
			Error: err.Error(),
		})
		return
	}
	s.render(w, r, http.StatusOK, "contact.html", &pageData{
		Title:  "Contact Us",
		Notice: "Thank you! Your message is on its way.",
		Draft:  &draft,
	})
}

func (s *Server) handleBlogPost(w http.ResponseWriter, r *http.Request) {
	post, ok := s.site.Snapshot().BlogPost(chi.URLParam(r, "id"))
	if !ok {
		s.handleNotFound(w, r)
		return
	}
	s.render(w, r, http.StatusOK, "blog_post.html", &pageData{Title: post.Title, Post: post})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusNotFound, "not_found.html", &pageData{Title: "Not Found"})
}
