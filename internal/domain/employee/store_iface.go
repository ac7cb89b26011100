package employee

import "context"

type StoreAPI interface {
	List(ctx context.Context) ([]Employee, error)
	Get(ctx context.Context, id string) (*Employee, error)
	Count(ctx context.Context) (int, error)
	Insert(ctx context.Context, emp Employee) (string, error)
	Update(ctx context.Context, emp Employee) error
}
