package services

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/xxml-lang/xxmlhub/models"
)

// ModuleSeed is one entry of the ordered in-memory documentation dataset.
// List position determines sort order at every level.
type ModuleSeed struct {
	Slug        string
	Name        string
	Description string
	ImportPath  string
	Classes     []ClassSeed
}

// ClassSeed describes a documented type and its children.
type ClassSeed struct {
	Slug        string
	Name        string
	Description string
	Constraints string
	Methods     []MethodSeed
	Examples    []ExampleSeed
}

// MethodSeed describes one documented operation.
type MethodSeed struct {
	Name        string
	Category    string
	Params      string
	Returns     string
	Description string
}

// ExampleSeed describes one code sample.
type ExampleSeed struct {
	Title     string
	Code      string
	Filename  string
	ShowLines bool
}

// SeedSummary reports stored row totals after a run.
type SeedSummary struct {
	Modules  int64
	Classes  int64
	Methods  int64
	Examples int64
}

func (s SeedSummary) String() string {
	return fmt.Sprintf("%d modules, %d classes, %d methods, %d examples",
		s.Modules, s.Classes, s.Methods, s.Examples)
}

// Seeder populates the documentation tables from an in-memory dataset.
// Re-running the same dataset is idempotent: modules and classes are matched
// by slug and updated in place, while each matched class's methods and
// examples are fully replaced, so nothing accumulates across runs.
//
// The run is best-effort across modules: each module commits independently
// and the first failure aborts the rest, leaving earlier modules persisted.
// Within one class the child replacement runs in a single transaction.
type Seeder struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

// NewSeeder creates a Seeder. A nil logger disables progress output.
func NewSeeder(db *gorm.DB, log *zap.SugaredLogger) *Seeder {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Seeder{db: db, log: log}
}

// Run applies the dataset in order and returns the stored row totals.
func (s *Seeder) Run(dataset []ModuleSeed) (SeedSummary, error) {
	for i, mod := range dataset {
		s.log.Infof("seeding module %q (%d/%d)", mod.Name, i+1, len(dataset))
		if err := s.seedModule(mod, i); err != nil {
			return SeedSummary{}, fmt.Errorf("module %q: %w", mod.Slug, err)
		}
	}
	return s.summary()
}

func (s *Seeder) seedModule(mod ModuleSeed, sortOrder int) error {
	module, err := s.upsertModule(mod, sortOrder)
	if err != nil {
		return err
	}

	// Classes absent from the incoming dataset are removed so a slug rename
	// in the dataset behaves as delete+create instead of orphaning the old
	// row. Slug is an identity key, never rewritten in place.
	if err := s.pruneClasses(module.ID, mod.Classes); err != nil {
		return err
	}

	for i, cls := range mod.Classes {
		s.log.Infof("  class %q (%d methods, %d examples)", cls.Name, len(cls.Methods), len(cls.Examples))
		if err := s.upsertClass(module.ID, cls, i); err != nil {
			return fmt.Errorf("class %q: %w", cls.Slug, err)
		}
	}
	return nil
}

// upsertModule matches by slug: updates the display fields of an existing
// module or creates a new one at the given position.
func (s *Seeder) upsertModule(mod ModuleSeed, sortOrder int) (*models.DocModule, error) {
	var module models.DocModule
	err := s.db.Where("slug = ?", mod.Slug).First(&module).Error
	switch {
	case err == nil:
		module.Name = mod.Name
		module.Description = mod.Description
		module.ImportPath = mod.ImportPath
		module.SortOrder = sortOrder
		if err := s.db.Save(&module).Error; err != nil {
			return nil, err
		}
		return &module, nil
	case err == gorm.ErrRecordNotFound:
		module = models.DocModule{
			Slug:        mod.Slug,
			Name:        mod.Name,
			Description: mod.Description,
			ImportPath:  mod.ImportPath,
			SortOrder:   sortOrder,
		}
		if err := s.db.Create(&module).Error; err != nil {
			return nil, err
		}
		return &module, nil
	default:
		return nil, err
	}
}

func (s *Seeder) pruneClasses(moduleID uint, incoming []ClassSeed) error {
	keep := make([]string, 0, len(incoming))
	for _, cls := range incoming {
		keep = append(keep, cls.Slug)
	}

	var stale []models.DocClass
	q := s.db.Where("module_id = ?", moduleID)
	if len(keep) > 0 {
		q = q.Where("slug NOT IN ?", keep)
	}
	if err := q.Find(&stale).Error; err != nil {
		return err
	}
	for _, cls := range stale {
		s.log.Infof("  removing class %q, no longer in dataset", cls.Slug)
		if err := s.deleteClass(cls.ID); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) deleteClass(classID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("class_id = ?", classID).Delete(&models.DocMethod{}).Error; err != nil {
			return err
		}
		if err := tx.Where("class_id = ?", classID).Delete(&models.DocExample{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.DocClass{}, classID).Error
	})
}

// upsertClass matches by (module_id, slug). An existing class keeps its row
// but has its methods and examples fully replaced, not merged; a new class is
// created together with its children in one composite write. Either path runs
// inside one transaction so partial child lists are never visible.
func (s *Seeder) upsertClass(moduleID uint, cls ClassSeed, sortOrder int) error {
	var existing models.DocClass
	err := s.db.Where("module_id = ? AND slug = ?", moduleID, cls.Slug).First(&existing).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return err
	}

	if err == nil {
		return s.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("class_id = ?", existing.ID).Delete(&models.DocMethod{}).Error; err != nil {
				return err
			}
			if err := tx.Where("class_id = ?", existing.ID).Delete(&models.DocExample{}).Error; err != nil {
				return err
			}
			existing.Name = cls.Name
			existing.Description = cls.Description
			existing.Constraints = cls.Constraints
			existing.SortOrder = sortOrder
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			if methods := buildMethods(existing.ID, cls.Methods); len(methods) > 0 {
				if err := tx.Create(&methods).Error; err != nil {
					return err
				}
			}
			if examples := buildExamples(existing.ID, cls.Examples); len(examples) > 0 {
				if err := tx.Create(&examples).Error; err != nil {
					return err
				}
			}
			return nil
		})
	}

	class := models.DocClass{
		ModuleID:    moduleID,
		Slug:        cls.Slug,
		Name:        cls.Name,
		Description: cls.Description,
		Constraints: cls.Constraints,
		SortOrder:   sortOrder,
		Methods:     buildMethods(0, cls.Methods),
		Examples:    buildExamples(0, cls.Examples),
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&class).Error
	})
}

func buildMethods(classID uint, seeds []MethodSeed) []models.DocMethod {
	methods := make([]models.DocMethod, 0, len(seeds))
	for i, m := range seeds {
		methods = append(methods, models.DocMethod{
			ClassID:     classID,
			Name:        m.Name,
			Category:    m.Category,
			Params:      m.Params,
			Returns:     m.Returns,
			Description: m.Description,
			SortOrder:   i,
		})
	}
	return methods
}

func buildExamples(classID uint, seeds []ExampleSeed) []models.DocExample {
	examples := make([]models.DocExample, 0, len(seeds))
	for i, e := range seeds {
		examples = append(examples, models.DocExample{
			ClassID:   classID,
			Title:     e.Title,
			Code:      e.Code,
			Filename:  e.Filename,
			ShowLines: e.ShowLines,
			SortOrder: i,
		})
	}
	return examples
}

func (s *Seeder) summary() (SeedSummary, error) {
	var sum SeedSummary
	if err := s.db.Model(&models.DocModule{}).Count(&sum.Modules).Error; err != nil {
		return sum, err
	}
	if err := s.db.Model(&models.DocClass{}).Count(&sum.Classes).Error; err != nil {
		return sum, err
	}
	if err := s.db.Model(&models.DocMethod{}).Count(&sum.Methods).Error; err != nil {
		return sum, err
	}
	if err := s.db.Model(&models.DocExample{}).Count(&sum.Examples).Error; err != nil {
		return sum, err
	}
	return sum, nil
}
