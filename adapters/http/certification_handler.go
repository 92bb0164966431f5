package http

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/haintran/portfolio-api/internal/application/usecase/content"
	"github.com/haintran/portfolio-api/internal/application/usecase/upload"
	"github.com/haintran/portfolio-api/internal/domain/profile"
	"github.com/haintran/portfolio-api/pkg/apperror"
	"github.com/haintran/portfolio-api/pkg/logger"
)

// CertificationHandler is the one collection editor speaking multipart
// form data, because a certification can carry its badge image in the same
// request that creates it.
type CertificationHandler struct {
	itemUseCase   *content.ItemUseCase[profile.Certification]
	uploadUseCase *upload.UploadUseCase
	logger        logger.Logger
}

func NewCertificationHandler(
	itemUC *content.ItemUseCase[profile.Certification],
	uploadUC *upload.UploadUseCase,
	log logger.Logger,
) *CertificationHandler {
	return &CertificationHandler{
		itemUseCase:   itemUC,
		uploadUseCase: uploadUC,
		logger:        log,
	}
}

func (h *CertificationHandler) Register(rg *gin.RouterGroup, path string) {
	rg.GET(path, h.List)
	rg.POST(path, h.Create)
	rg.PUT(path+"/:id", h.Update)
	rg.DELETE(path+"/:id", h.Delete)
}

func (h *CertificationHandler) List(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	certs, err := h.itemUseCase.List(c.Request.Context(), ownerID)
	if err != nil {
		c.Error(err)
		return
	}
	sort.SliceStable(certs, func(i, j int) bool { return certs[i].Date > certs[j].Date })

	dtos := make([]CertificationDTO, len(certs))
	for i, cert := range certs {
		dtos[i] = ToCertificationDTO(cert)
	}
	c.JSON(http.StatusOK, gin.H{"certifications": dtos})
}

func (h *CertificationHandler) Create(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	cert, err := h.bindForm(c)
	if err != nil {
		c.Error(err)
		return
	}

	created, err := h.itemUseCase.Add(c.Request.Context(), ownerID, cert)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"certification": ToCertificationDTO(created)})
}

func (h *CertificationHandler) Update(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}
	itemID, err := parseItemID(c)
	if err != nil {
		c.Error(err)
		return
	}

	cert, err := h.bindForm(c)
	if err != nil {
		c.Error(err)
		return
	}

	updated, err := h.itemUseCase.Update(c.Request.Context(), ownerID, itemID, cert)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"certification": ToCertificationDTO(updated)})
}

func (h *CertificationHandler) Delete(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}
	itemID, err := parseItemID(c)
	if err != nil {
		c.Error(err)
		return
	}

	removed, err := h.itemUseCase.Remove(c.Request.Context(), ownerID, itemID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"certification": ToCertificationDTO(removed)})
}

// bindForm reads the multipart fields and, when an image file accompanies
// them, stores it first so the certification references the final URL.
func (h *CertificationHandler) bindForm(c *gin.Context) (profile.Certification, error) {
	cert := profile.Certification{
		Title:  c.PostForm("title"),
		Issuer: c.PostForm("issuer"),
		Date:   c.PostForm("date"),
		Link:   c.PostForm("link"),
		Image:  c.PostForm("image_url"),
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		// No file attached is fine; the image_url field stands.
		return cert, nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return cert, apperror.NewInvalidInput("failed to read uploaded image", err)
	}
	defer file.Close()

	output, err := h.uploadUseCase.Execute(c.Request.Context(), upload.UploadInput{
		File:        file,
		ContentType: fileHeader.Header.Get("Content-Type"),
	})
	if err != nil {
		return cert, err
	}
	cert.Image = output.URL
	return cert, nil
}
