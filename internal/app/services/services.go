package services

// Services holds all the service instances
type Services struct {
	AuthService          *AuthService
	ReportService        *ReportService
	CommentService       *CommentService
	MeTooService         *MeTooService
	AdvertisementService *AdvertisementService
	NotificationService  *NotificationService
	ContentService       *ContentService
	StatsService         *StatsService
	AIService            *AIService
	ExportService        *ExportService
	MaintenanceService   *MaintenanceService
}
