package repositories

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/muzaffarov/vacancy-bot/internal/domain/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DbContext struct {
	DB *gorm.DB
}

func NewDbContext(connectionString string) (*DbContext, error) {
	db, err := gorm.Open(sqlite.Open(connectionString), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, err
	}

	return &DbContext{DB: db}, nil
}

func (c *DbContext) Migrate() error {
	err := c.DB.AutoMigrate(models.Vacancy{})
	if err != nil {
		return fmt.Errorf("failed to migrate Vacancy entity: %w", err)
	}

	err = c.DB.AutoMigrate(models.Subscriber{})
	if err != nil {
		return fmt.Errorf("failed to migrate Subscriber entity: %w", err)
	}

	err = c.DB.AutoMigrate(models.SearchFilter{})
	if err != nil {
		return fmt.Errorf("failed to migrate SearchFilter entity: %w", err)
	}

	err = c.DB.AutoMigrate(models.SentVacancy{})
	if err != nil {
		return fmt.Errorf("failed to migrate SentVacancy entity: %w", err)
	}

	if err = c.DB.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_vacancy_external_id ON vacancies (external_id); " +
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_user_vacancy_id ON sent_vacancies (user_id, vacancy_id);").
		Error; err != nil {
		return fmt.Errorf("failed to create unique indexes: %w", err)
	}

	return nil
}

func (c *DbContext) Close() error {
	db, err := c.DB.DB()
	if err != nil {
		return err
	}

	return db.Close()
}
