package repository

import (
	"context"
	"time"

	"github.com/Chelosky-O/soyElectronico/internal/dto"
	"github.com/Chelosky-O/soyElectronico/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductoRepository defines the data access contract for catalog rows.
// The *Tx methods run inside a caller-owned transaction and exist for the
// purchase flow, which must hold a row lock across the stock check and
// the decrement.
type ProductoRepository interface {
	Create(ctx context.Context, p *model.Producto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error)
	List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, error)
	Update(ctx context.Context, p *model.Producto) error
	// Delete removes the row; gorm.ErrRecordNotFound when nothing matched.
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByIDForUpdateTx reads the row under SELECT ... FOR UPDATE,
	// serializing concurrent purchases of the same product.
	FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Producto, error)
	// DescontarStockTx decrements stock and bumps fecha_actualizacion.
	// The WHERE stock >= cantidad guard makes the statement a no-op when
	// stock is insufficient; the returned row count is 0 in that case.
	DescontarStockTx(tx *gorm.DB, id uuid.UUID, cantidad int, ahora time.Time) (int64, error)
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) Create(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productoRepo) List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, error) {
	var productos []model.Producto

	q := r.db.WithContext(ctx).Model(&model.Producto{})
	if filter.Categoria != "" {
		q = q.Where("LOWER(categoria) = LOWER(?)", filter.Categoria)
	} else if filter.Q != "" {
		q = q.Where("nombre ILIKE ?", "%"+filter.Q+"%")
	}

	err := q.Order("nombre ASC").Find(&productos).Error
	return productos, err
}

func (r *productoRepo) Update(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Producto{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *productoRepo) FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productoRepo) DescontarStockTx(tx *gorm.DB, id uuid.UUID, cantidad int, ahora time.Time) (int64, error) {
	res := tx.Model(&model.Producto{}).
		Where("id = ? AND stock >= ?", id, cantidad).
		Updates(map[string]interface{}{
			"stock":               gorm.Expr("stock - ?", cantidad),
			"fecha_actualizacion": ahora,
		})
	return res.RowsAffected, res.Error
}
