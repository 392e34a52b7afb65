package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ecotriz/cee-visits/internal/core/domain"
	"github.com/ecotriz/cee-visits/internal/core/ports"
)

const collectionVisits = "visits"

type VisitRepository struct {
	col *mongo.Collection
}

func NewVisitRepository(db *mongo.Database) *VisitRepository {
	return &VisitRepository{col: db.Collection(collectionVisits)}
}

type visitOperationDoc struct {
	TypeCode string  `bson:"type_code"`
	Quantity float64 `bson:"quantity"`
	Zone     string  `bson:"zone"`
	KWhCumac float64 `bson:"kwh_cumac"`
	ValueEUR float64 `bson:"value_eur"`
}

type statusChangeDoc struct {
	Status    string    `bson:"status"`
	Timestamp time.Time `bson:"timestamp"`
	Notes     string    `bson:"notes,omitempty"`
}

type visitDoc struct {
	ID            string              `bson:"_id"`
	ClientID      string              `bson:"client_id"`
	TechnicianID  string              `bson:"technician_id"`
	ScheduledAt   time.Time           `bson:"scheduled_at"`
	SiteAddress   string              `bson:"site_address"`
	Status        string              `bson:"status"`
	Notes         string              `bson:"notes,omitempty"`
	Operations    []visitOperationDoc `bson:"operations"`
	TotalKWhCumac float64             `bson:"total_kwh_cumac"`
	TotalValueEUR float64             `bson:"total_value_eur"`
	StatusHistory []statusChangeDoc   `bson:"status_history"`
	CreatedAt     time.Time           `bson:"created_at"`
	UpdatedAt     time.Time           `bson:"updated_at"`
}

func toVisitDoc(v *domain.Visit) visitDoc {
	doc := visitDoc{
		ID:            v.ID,
		ClientID:      v.ClientID,
		TechnicianID:  v.TechnicianID,
		ScheduledAt:   v.ScheduledAt,
		SiteAddress:   v.SiteAddress,
		Status:        string(v.Status),
		Notes:         v.Notes,
		TotalKWhCumac: v.TotalKWhCumac,
		TotalValueEUR: v.TotalValueEUR,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
	for _, op := range v.Operations {
		doc.Operations = append(doc.Operations, visitOperationDoc(op))
	}
	for _, sc := range v.StatusHistory {
		doc.StatusHistory = append(doc.StatusHistory, statusChangeDoc{
			Status:    string(sc.Status),
			Timestamp: sc.Timestamp,
			Notes:     sc.Notes,
		})
	}
	return doc
}

func (d *visitDoc) toDomain() *domain.Visit {
	v := &domain.Visit{
		ID:            d.ID,
		ClientID:      d.ClientID,
		TechnicianID:  d.TechnicianID,
		ScheduledAt:   d.ScheduledAt.UTC(),
		SiteAddress:   d.SiteAddress,
		Status:        domain.VisitStatus(d.Status),
		Notes:         d.Notes,
		TotalKWhCumac: d.TotalKWhCumac,
		TotalValueEUR: d.TotalValueEUR,
		CreatedAt:     d.CreatedAt.UTC(),
		UpdatedAt:     d.UpdatedAt.UTC(),
	}
	for _, op := range d.Operations {
		v.Operations = append(v.Operations, domain.VisitOperation(op))
	}
	for _, sc := range d.StatusHistory {
		v.StatusHistory = append(v.StatusHistory, domain.StatusChange{
			Status:    domain.VisitStatus(sc.Status),
			Timestamp: sc.Timestamp.UTC(),
			Notes:     sc.Notes,
		})
	}
	return v
}

func (r *VisitRepository) Create(ctx context.Context, visit *domain.Visit) (*domain.Visit, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, toVisitDoc(visit)); err != nil {
		return nil, fmt.Errorf("insert visit: %w", err)
	}
	return visit, nil
}

func (r *VisitRepository) FindByID(ctx context.Context, id string) (*domain.Visit, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc visitDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrVisitNotFound
		}
		return nil, fmt.Errorf("find visit: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *VisitRepository) List(ctx context.Context, filter ports.VisitFilter) ([]*domain.Visit, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.ClientID != "" {
		query["client_id"] = filter.ClientID
	}
	if filter.TechnicianID != "" {
		query["technician_id"] = filter.TechnicianID
	}

	cur, err := r.col.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "scheduled_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list visits: %w", err)
	}
	defer cur.Close(ctx)

	var visits []*domain.Visit
	for cur.Next(ctx) {
		var doc visitDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode visit: %w", err)
		}
		visits = append(visits, doc.toDomain())
	}
	return visits, cur.Err()
}

func (r *VisitRepository) Update(ctx context.Context, visit *domain.Visit) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": visit.ID}, toVisitDoc(visit))
	if err != nil {
		return fmt.Errorf("update visit: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrVisitNotFound
	}
	return nil
}

func (r *VisitRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete visit: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrVisitNotFound
	}
	return nil
}

// EnsureIndexes creates the scoping indexes used by List.
func (r *VisitRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "client_id", Value: 1}}},
		{Keys: bson.D{{Key: "technician_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
