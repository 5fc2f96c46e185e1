package api

import (
	"context"
	"fmt"
	"time"

	"github.com/fasthttp/router"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/valyala/fasthttp"

	"github.com/bahadricoz/shift/internal/access"
	"github.com/bahadricoz/shift/internal/dto"
)

// @title           Shift Planner API
// @version         1.0
// @description     Department shift scheduling: token-scoped calendar grid, segment validation with overlap detection, bulk operations, CSV/XLSX export.
//
// @BasePath  /
// @schemes   http
// @accept    json
// @produce   json

type DepartmentRepository interface {
	Create(ctx context.Context, name string) (int64, error)
	GetByID(ctx context.Context, id int64) (*dto.Department, error)
	GetByName(ctx context.Context, name string) (*dto.Department, error)
	List(ctx context.Context) ([]dto.Department, error)
	Delete(ctx context.Context, id int64) error
}

type MemberRepository interface {
	Create(ctx context.Context, m dto.TeamMember) (int64, error)
	Update(ctx context.Context, m dto.TeamMember) error
	Delete(ctx context.Context, id, departmentID int64) error
	GetByID(ctx context.Context, id int64) (*dto.TeamMember, error)
	ListByDepartment(ctx context.Context, departmentID int64) ([]dto.TeamMember, error)
}

type ShiftRepository interface {
	Create(ctx context.Context, seg dto.ShiftSegment) (int64, error)
	Update(ctx context.Context, seg dto.ShiftSegment) error
	Delete(ctx context.Context, id, departmentID int64) error
	DeleteForMemberAndDate(ctx context.Context, memberID, departmentID int64, date string) (int64, error)
	DeleteRange(ctx context.Context, memberID, departmentID int64, from, to string, workType *string) (int64, error)
	ListForMemberAndDate(ctx context.Context, memberID int64, date string) ([]dto.ShiftSegment, error)
	ListForDepartmentAndRange(ctx context.Context, departmentID int64, from, to string) ([]dto.ScheduleEntry, error)
	ListDistinctWorkTypes(ctx context.Context, departmentID int64) ([]string, error)
}

type AccessLinkRepository interface {
	access.LinkSource
	GetByDepartmentAndRole(ctx context.Context, departmentID int64, role string) (*dto.AccessLink, error)
	Create(ctx context.Context, link dto.AccessLink) (*dto.AccessLink, error)
}

type Producer interface {
	ProduceSegmentChange(ctx context.Context, messageID uuid.UUID, action string, seg dto.ShiftSegment) error
}

type ServiceDeps struct {
	Port     int
	BaseURL  string
	SetupKey string

	DepartmentRepo DepartmentRepository
	MemberRepo     MemberRepository
	ShiftRepo      ShiftRepository
	LinkRepo       AccessLinkRepository

	Producer Producer // nil when the change feed is disabled
}

type Service struct {
	r    *router.Router
	port int

	baseURL  string
	setupKey string

	departments DepartmentRepository
	members     MemberRepository
	shifts      ShiftRepository
	links       AccessLinkRepository
	resolver    *access.Resolver
	producer    Producer
}

func NewService(d ServiceDeps) *Service {
	s := &Service{
		r:           router.New(),
		port:        d.Port,
		baseURL:     d.BaseURL,
		setupKey:    d.SetupKey,
		departments: d.DepartmentRepo,
		members:     d.MemberRepo,
		shifts:      d.ShiftRepo,
		links:       d.LinkRepo,
		resolver:    access.NewResolver(d.LinkRepo),
		producer:    d.Producer,
	}

	s.mountRoutes()

	return s
}

func (s *Service) Start(ctx context.Context) error {
	mainHandler := RecoveryMiddleware(LoggingMiddleware(CORS(s.r.Handler)))

	server := fasthttp.Server{
		Handler:            mainHandler,
		Name:               "shift-planner-api",
		ReadTimeout:        10 * time.Second,
		WriteTimeout:       15 * time.Second,
		MaxRequestBodySize: 2 << 20, // 2 MiB
	}

	log.Info().Int("port", s.port).Msg("starting shift planner API")

	emergencyShutdown := make(chan error)
	go func() {
		err := server.ListenAndServe(fmt.Sprintf(":%d", s.port))
		emergencyShutdown <- err
	}()

	select {
	case <-ctx.Done():
		return server.Shutdown()
	case e := <-emergencyShutdown:
		return e
	}
}

func (s *Service) mountRoutes() {
	// Access
	s.r.POST("/access/bootstrap", s.bootstrapAccess)
	s.r.GET("/access/links", s.asAdmin(s.listAccessLinks))

	// Departments
	s.r.GET("/departments", s.asViewer(s.listDepartments))
	s.r.POST("/departments", s.asAdmin(s.createDepartment))
	s.r.DELETE("/departments/{id}", s.asAdmin(s.deleteDepartment))

	// Team members
	s.r.GET("/members", s.asViewer(s.listMembers))
	s.r.POST("/members", s.asAdmin(s.createMember))
	s.r.PUT("/members/{id}", s.asAdmin(s.updateMember))
	s.r.DELETE("/members/{id}", s.asAdmin(s.deleteMember))

	// Segments
	s.r.GET("/segments", s.asViewer(s.listSegments))
	s.r.POST("/segments", s.asAdmin(s.createSegment))
	s.r.PUT("/segments/{id}", s.asAdmin(s.updateSegment))
	s.r.DELETE("/segments/{id}", s.asAdmin(s.deleteSegment))
	s.r.DELETE("/segments", s.asAdmin(s.clearCell))

	// Grid
	s.r.GET("/schedule", s.asViewer(s.scheduleGrid))
	s.r.GET("/work-types", s.asViewer(s.listWorkTypes))

	// Bulk operations
	s.r.POST("/bulk/assign", s.asAdmin(s.bulkAssign))
	s.r.POST("/bulk/copy", s.asAdmin(s.bulkCopy))
	s.r.POST("/bulk/delete", s.asAdmin(s.bulkDelete))

	// Export
	s.r.GET("/export.csv", s.asViewer(s.exportCSV))
	s.r.GET("/export.xlsx", s.asViewer(s.exportXLSX))

	// Health
	s.r.GET("/health", s.healthHandler)
}
