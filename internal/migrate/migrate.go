package migrate

import (
	"context"

	"negociolisto-core/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MigrateOptions struct {
	CreateExtensions       bool // pgcrypto, pg_trgm
	CreateChecks           bool // business-rule CHECK constraints
	CreateUpdatedAtTrigger bool
}

func DefaultMigrateOptions() MigrateOptions {
	return MigrateOptions{
		CreateExtensions:       true,
		CreateChecks:           true,
		CreateUpdatedAtTrigger: true,
	}
}

func MigrateCoreDB(ctx context.Context, db *gorm.DB, log *zap.Logger, opt MigrateOptions) error {
	db = db.WithContext(ctx)
	log.Info("starting core schema migration")

	if opt.CreateExtensions {
		for _, ext := range []string{`pgcrypto`, `pg_trgm`} {
			if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS ` + ext).Error; err != nil {
				log.Error("failed to enable extension", zap.String("ext", ext), zap.Error(err))
				return err
			}
		}
	}

	log.Info("creating core tables")
	if err := db.AutoMigrate(
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Sale{},
		&models.SaleItem{},
		&models.Collection{},
		&models.CollectionItem{},
	); err != nil {
		log.Error("failed to create tables", zap.Error(err))
		return err
	}

	if opt.CreateChecks {
		checks := []struct {
			table, name, expr string
		}{
			{"order_items", "chk_order_items_quantity", "quantity >= 1"},
			{"order_items", "chk_order_items_rating", "rating IS NULL OR (rating BETWEEN 1 AND 5)"},
			{"sale_items", "chk_sale_items_quantity", "quantity >= 1"},
			{"products", "chk_products_stock", "stock_quantity >= 0"},
			{"sales", "chk_sales_total", "total_cents >= 0"},
			{"collection_items", "chk_collection_items_order", "display_order >= 0"},
		}
		for _, ch := range checks {
			sql := `DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = '` + ch.name + `') THEN
    ALTER TABLE ` + ch.table + ` ADD CONSTRAINT ` + ch.name + ` CHECK (` + ch.expr + `);
  END IF;
END $$;`
			if err := db.Exec(sql).Error; err != nil {
				log.Error("failed to add check constraint", zap.String("name", ch.name), zap.Error(err))
				return err
			}
		}
	}

	if opt.CreateUpdatedAtTrigger {
		if err := db.Exec(`
CREATE OR REPLACE FUNCTION set_updated_at() RETURNS trigger AS $$
BEGIN
  NEW.updated_at = now();
  RETURN NEW;
END;
$$ LANGUAGE plpgsql;
`).Error; err != nil {
			log.Error("failed to create updated_at function", zap.Error(err))
			return err
		}
		for _, table := range []string{"orders", "products", "collections"} {
			sql := `DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_` + table + `_updated_at') THEN
    CREATE TRIGGER trg_` + table + `_updated_at BEFORE UPDATE ON ` + table + `
      FOR EACH ROW EXECUTE FUNCTION set_updated_at();
  END IF;
END $$;`
			if err := db.Exec(sql).Error; err != nil {
				log.Error("failed to create updated_at trigger", zap.String("table", table), zap.Error(err))
				return err
			}
		}
	}

	log.Info("core schema migration finished")
	return nil
}
