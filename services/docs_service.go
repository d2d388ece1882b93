package services

import (
	"gorm.io/gorm"

	"github.com/xxml-lang/xxmlhub/models"
)

// DocsService serves the documentation read paths and the moderated editing
// workflow. Mutations require an elevated role and reuse the seeder's
// full-replace semantics so the editor and the seed tool cannot diverge.
type DocsService struct {
	db    *gorm.DB
	gate  *AccessGate
	cache Invalidator
}

// NewDocsService creates a DocsService.
func NewDocsService(db *gorm.DB, cache Invalidator) *DocsService {
	if cache == nil {
		cache = NopInvalidator{}
	}
	return &DocsService{db: db, gate: NewAccessGate(db), cache: cache}
}

// ListModules returns all modules in display order, without children.
func (s *DocsService) ListModules() ([]models.DocModule, error) {
	var modules []models.DocModule
	err := s.db.Order("sort_order, id").Find(&modules).Error
	return modules, err
}

// GetModule returns one module with its classes in display order.
func (s *DocsService) GetModule(slug string) (*models.DocModule, error) {
	var module models.DocModule
	err := s.db.Preload("Classes", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order, id")
	}).Where("slug = ?", slug).First(&module).Error
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &module, nil
}

// GetClass returns one class with its methods and examples in display order.
func (s *DocsService) GetClass(moduleSlug, classSlug string) (*models.DocClass, error) {
	module, err := s.GetModule(moduleSlug)
	if err != nil {
		return nil, err
	}
	var class models.DocClass
	err = s.db.Preload("Methods", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order, id")
	}).Preload("Examples", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order, id")
	}).Where("module_id = ? AND slug = ?", module.ID, classSlug).First(&class).Error
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &class, nil
}

// UpdateModule edits a module's display fields, elevated-only. The slug is
// an identity key and cannot be changed here.
func (s *DocsService) UpdateModule(callerID uint, slug, name, description, importPath string) (*models.DocModule, error) {
	if err := requireCaller(callerID); err != nil {
		return nil, err
	}
	var module models.DocModule
	if err := s.db.Where("slug = ?", slug).First(&module).Error; err != nil {
		return nil, notFoundOr(err)
	}
	if !s.gate.HasElevatedRole(callerID) {
		return nil, ErrForbidden
	}
	if name == "" {
		return nil, invalid("name", "cannot be empty")
	}
	module.Name = name
	module.Description = description
	module.ImportPath = importPath
	if err := s.db.Save(&module).Error; err != nil {
		return nil, err
	}
	s.invalidateModule(slug)
	return &module, nil
}

// ReplaceClass rewrites a class and its full method and example lists,
// elevated-only. A class not present yet is created at the end of the
// module's display order.
func (s *DocsService) ReplaceClass(callerID uint, moduleSlug string, cls ClassSeed) (*models.DocClass, error) {
	if err := requireCaller(callerID); err != nil {
		return nil, err
	}
	var module models.DocModule
	if err := s.db.Where("slug = ?", moduleSlug).First(&module).Error; err != nil {
		return nil, notFoundOr(err)
	}
	if !s.gate.HasElevatedRole(callerID) {
		return nil, ErrForbidden
	}
	if cls.Slug == "" {
		return nil, invalid("slug", "cannot be empty")
	}
	if cls.Name == "" {
		return nil, invalid("name", "cannot be empty")
	}

	sortOrder, err := s.classSortOrder(module.ID, cls.Slug)
	if err != nil {
		return nil, err
	}
	seeder := NewSeeder(s.db, nil)
	if err := seeder.upsertClass(module.ID, cls, sortOrder); err != nil {
		return nil, err
	}
	s.invalidateModule(moduleSlug)
	s.cache.InvalidatePath("/docs/" + moduleSlug + "/" + cls.Slug)
	return s.GetClass(moduleSlug, cls.Slug)
}

// DeleteClass removes a class with its methods and examples, elevated-only.
func (s *DocsService) DeleteClass(callerID uint, moduleSlug, classSlug string) error {
	if err := requireCaller(callerID); err != nil {
		return err
	}
	var module models.DocModule
	if err := s.db.Where("slug = ?", moduleSlug).First(&module).Error; err != nil {
		return notFoundOr(err)
	}
	var class models.DocClass
	if err := s.db.Where("module_id = ? AND slug = ?", module.ID, classSlug).First(&class).Error; err != nil {
		return notFoundOr(err)
	}
	if !s.gate.HasElevatedRole(callerID) {
		return ErrForbidden
	}
	seeder := NewSeeder(s.db, nil)
	if err := seeder.deleteClass(class.ID); err != nil {
		return err
	}
	s.invalidateModule(moduleSlug)
	s.cache.InvalidatePath("/docs/" + moduleSlug + "/" + classSlug)
	return nil
}

// classSortOrder keeps an existing class's position and appends new classes
// after the current maximum.
func (s *DocsService) classSortOrder(moduleID uint, slug string) (int, error) {
	var existing models.DocClass
	err := s.db.Where("module_id = ? AND slug = ?", moduleID, slug).First(&existing).Error
	if err == nil {
		return existing.SortOrder, nil
	}
	if err != gorm.ErrRecordNotFound {
		return 0, err
	}
	var max *int
	if err := s.db.Model(&models.DocClass{}).Where("module_id = ?", moduleID).
		Select("MAX(sort_order)").Scan(&max).Error; err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max + 1, nil
}

func (s *DocsService) invalidateModule(slug string) {
	s.cache.InvalidatePath("/docs")
	s.cache.InvalidatePath("/docs/" + slug)
}
