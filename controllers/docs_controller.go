package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xxml-lang/xxmlhub/services"
	"github.com/xxml-lang/xxmlhub/utils"
)

// DocsController serves the language reference and its moderated editor
// endpoints.
type DocsController struct {
	docs *services.DocsService
}

// NewDocsController creates a new DocsController instance.
func NewDocsController(docs *services.DocsService) *DocsController {
	return &DocsController{docs: docs}
}

// ListModules returns all documentation modules in display order.
func (d *DocsController) ListModules(ctx *gin.Context) {
	cacheKey := utils.PathCacheKey("/docs")
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(200, "application/json", b)
		return
	}

	modules, err := d.docs.ListModules()
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50220, "failed to list modules")
		return
	}
	payload := gin.H{"items": modules}
	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: payload}
	utils.CacheSetJSON(cacheKey, wrapper, time.Hour)
	utils.Success(ctx, payload)
}

// GetModule returns one module with its classes.
func (d *DocsController) GetModule(ctx *gin.Context) {
	slug := ctx.Param("slug")

	cacheKey := utils.PathCacheKey("/docs/" + slug)
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(200, "application/json", b)
		return
	}

	module, err := d.docs.GetModule(slug)
	if err != nil {
		serviceError(ctx, 40220, err)
		return
	}
	payload := gin.H{"module": module}
	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: payload}
	utils.CacheSetJSON(cacheKey, wrapper, time.Hour)
	utils.Success(ctx, payload)
}

// GetClass returns one class with its methods and examples.
func (d *DocsController) GetClass(ctx *gin.Context) {
	moduleSlug := ctx.Param("slug")
	classSlug := ctx.Param("classSlug")

	cacheKey := utils.PathCacheKey("/docs/" + moduleSlug + "/" + classSlug)
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(200, "application/json", b)
		return
	}

	class, err := d.docs.GetClass(moduleSlug, classSlug)
	if err != nil {
		serviceError(ctx, 40230, err)
		return
	}
	payload := gin.H{"class": class}
	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: payload}
	utils.CacheSetJSON(cacheKey, wrapper, time.Hour)
	utils.Success(ctx, payload)
}

// UpdateModule edits module metadata, elevated-only.
func (d *DocsController) UpdateModule(ctx *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		ImportPath  string `json:"import_path"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40240, "invalid request payload")
		return
	}
	userID, _ := getUserID(ctx)

	module, err := d.docs.UpdateModule(userID, ctx.Param("slug"), req.Name, req.Description, req.ImportPath)
	if err != nil {
		serviceError(ctx, 40240, err)
		return
	}
	utils.Success(ctx, gin.H{"module": module})
}

type docMethodRequest struct {
	Name        string `json:"name" binding:"required"`
	Category    string `json:"category"`
	Params      string `json:"params"`
	Returns     string `json:"returns"`
	Description string `json:"description"`
}

type docExampleRequest struct {
	Title     string `json:"title"`
	Code      string `json:"code" binding:"required"`
	Filename  string `json:"filename"`
	ShowLines bool   `json:"show_lines"`
}

// ReplaceClass rewrites a class with its full method and example lists,
// elevated-only. The submitted lists replace whatever is stored.
func (d *DocsController) ReplaceClass(ctx *gin.Context) {
	var req struct {
		Name        string              `json:"name" binding:"required"`
		Description string              `json:"description"`
		Constraints string              `json:"constraints"`
		Methods     []docMethodRequest  `json:"methods"`
		Examples    []docExampleRequest `json:"examples"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40250, "invalid request payload")
		return
	}
	userID, _ := getUserID(ctx)

	cls := services.ClassSeed{
		Slug:        ctx.Param("classSlug"),
		Name:        req.Name,
		Description: req.Description,
		Constraints: req.Constraints,
	}
	for _, m := range req.Methods {
		cls.Methods = append(cls.Methods, services.MethodSeed{
			Name:        m.Name,
			Category:    m.Category,
			Params:      m.Params,
			Returns:     m.Returns,
			Description: m.Description,
		})
	}
	for _, e := range req.Examples {
		cls.Examples = append(cls.Examples, services.ExampleSeed{
			Title:     e.Title,
			Code:      e.Code,
			Filename:  e.Filename,
			ShowLines: e.ShowLines,
		})
	}

	class, err := d.docs.ReplaceClass(userID, ctx.Param("slug"), cls)
	if err != nil {
		serviceError(ctx, 40250, err)
		return
	}
	utils.Success(ctx, gin.H{"class": class})
}

// DeleteClass removes a class and its children, elevated-only.
func (d *DocsController) DeleteClass(ctx *gin.Context) {
	userID, _ := getUserID(ctx)
	if err := d.docs.DeleteClass(userID, ctx.Param("slug"), ctx.Param("classSlug")); err != nil {
		serviceError(ctx, 40260, err)
		return
	}
	utils.Success(ctx, gin.H{"message": "class deleted"})
}
