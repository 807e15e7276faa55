package components

import (
	"salon-assist/internal/infra"
	"salon-assist/internal/infra/readstore"
	"salon-assist/internal/infra/repository"
	"salon-assist/internal/usecase/commands"
	"salon-assist/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	repositoryModule,
)

var baseOption = fx.Provide(
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		fx.Annotate(
			readstore.NewRequestReadStore,
			fx.As(new(queries.RequestReadStore)),
		),
		fx.Annotate(
			readstore.NewActiveRequestReadStore,
			fx.As(new(queries.ActiveRequestReadStore)),
		),
		fx.Annotate(
			readstore.NewAppointmentSnapshotStore,
			fx.As(new(queries.AppointmentSnapshotSource)),
		),
		fx.Annotate(
			readstore.NewStaffReadStore,
			fx.As(new(queries.StaffReadStore)),
		),
	),
)

var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		fx.Annotate(
			repository.NewRequestRepository,
			fx.As(new(commands.RequestRepository)),
		),
		fx.Annotate(
			repository.NewLocationRepository,
			fx.As(new(commands.LocationRepository)),
		),
		fx.Annotate(
			repository.NewAvailabilityRepository,
			fx.As(new(commands.AvailabilityRepository)),
		),
		fx.Annotate(
			repository.NewNotificationRepository,
			fx.As(new(commands.NotificationRepository)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) infra.DBTX {
	return pool
}
