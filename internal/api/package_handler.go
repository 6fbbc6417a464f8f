package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/echoplay/echoplay/internal/service"
	"github.com/echoplay/echoplay/internal/urls"
)

// PackageHandler handles HTTP requests for distributable packages
type PackageHandler struct {
	packages *service.PackageService
	urls     urls.Builder
}

// NewPackageHandler creates a new package handler
func NewPackageHandler(packages *service.PackageService, urls urls.Builder) *PackageHandler {
	return &PackageHandler{packages: packages, urls: urls}
}

// Routes returns the routes for packages
func (h *PackageHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.UploadPackage)
	r.Get("/", h.ListPackages)
	r.Get("/latest", h.LatestPackage)

	return r
}

// PackageResponse is the response body for a stored package file
type PackageResponse struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// LatestPackageResponse is the response body for the resolved latest package
type LatestPackageResponse struct {
	LatestVersion string `json:"latest_version"`
	URL           string `json:"url"`
}

// UploadPackage stores a package archive from a multipart form with a version
// field and an apk part.
func (h *PackageHandler) UploadPackage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, r, err)
		return
	}

	archive, err := formPart(r, "apk")
	if err != nil {
		writeError(w, r, err)
		return
	}

	name, err := h.packages.Upload(r.Context(), service.UploadPackageRequest{
		Version: r.FormValue("version"),
		Archive: archive,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, PackageResponse{Name: name, URL: h.urls.Package(name)})
}

// ListPackages returns every stored package, newest version first.
func (h *PackageHandler) ListPackages(w http.ResponseWriter, r *http.Request) {
	pkgs, err := h.packages.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := make([]PackageResponse, 0, len(pkgs))
	for _, pkg := range pkgs {
		resp = append(resp, PackageResponse{Name: pkg.Name, URL: h.urls.Package(pkg.Name)})
	}
	render.JSON(w, r, resp)
}

// LatestPackage resolves the highest-versioned package.
func (h *PackageHandler) LatestPackage(w http.ResponseWriter, r *http.Request) {
	pkg, err := h.packages.Latest(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.JSON(w, r, LatestPackageResponse{
		LatestVersion: pkg.Version,
		URL:           h.urls.Package(pkg.Name),
	})
}
