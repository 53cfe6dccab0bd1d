package http

import "time"

type createShipmentRequest struct {
	MerchantID           string     `json:"merchant_id"`
	ReceiverName         string     `json:"receiver_name"`
	ReceiverPhone        string     `json:"receiver_phone"`
	ReceiverAddress      string     `json:"receiver_address"`
	PaymentMethod        string     `json:"payment_method"`
	CODAmount            string     `json:"cod_amount,omitempty"`
	PickupScheduledDate  time.Time  `json:"pickup_scheduled_date"`
	ExpectedDeliveryDate *time.Time `json:"expected_delivery_date,omitempty"`
}

type createShipmentResponse struct {
	AWB string `json:"awb"`
}

type assignPickupRequest struct {
	ShipmentID string `json:"shipment_id"`
	AgentID    string `json:"agent_id"`
}

type completePickupRequest struct {
	ShipmentID string `json:"shipment_id"`
}

type inboundScanRequest struct {
	AWBs       []string `json:"awbs"`
	ManifestID *string  `json:"manifest_id,omitempty"`
}

type outboundScanRequest struct {
	AWBs    []string `json:"awbs"`
	NextHub *string  `json:"next_hub,omitempty"`
	RiderID *string  `json:"rider_id,omitempty"`
}

type completeDeliveryRequest struct {
	OTP             string `json:"otp"`
	CollectedAmount string `json:"collected_amount,omitempty"`
	ReceivedBy      string `json:"received_by"`
	PODNote         string `json:"pod_note,omitempty"`
}

type failDeliveryRequest struct {
	Reason string `json:"reason"`
}

type failDeliveryResponse struct {
	AutoRTO bool `json:"auto_rto"`
}

type markRTORequest struct {
	Reason string `json:"reason"`
}

type createManifestRequest struct {
	AWBs           []string `json:"awbs"`
	OriginHub      string   `json:"origin_hub"`
	DestinationHub string   `json:"destination_hub"`
}

type createManifestResponse struct {
	ID     string `json:"id"`
	Number string `json:"number"`
}

type receiveManifestRequest struct {
	ScannedAWBs []string `json:"scanned_awbs"`
}

type receiveManifestResponse struct {
	Received      []string `json:"received"`
	NotInManifest []string `json:"not_in_manifest"`
	NotReceived   []string `json:"not_received"`
}

type recordRiderLocationRequest struct {
	ShipmentID *string   `json:"shipment_id,omitempty"`
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	RecordedAt time.Time `json:"recorded_at"`
}

type manifestListItemResponse struct {
	ID             string     `json:"id"`
	Number         string     `json:"number"`
	OriginHub      string     `json:"origin_hub"`
	DestinationHub string     `json:"destination_hub"`
	Status         string     `json:"status"`
	TotalShipments int        `json:"total_shipments"`
	DispatchDate   time.Time  `json:"dispatch_date"`
	ReceivedDate   *time.Time `json:"received_date,omitempty"`
	Notes          string     `json:"notes,omitempty"`
}

type hubInventoryItemResponse struct {
	AWB       string    `json:"awb"`
	IsRTO     bool      `json:"is_rto"`
	ArrivedAt time.Time `json:"arrived_at"`
}

type hubInventoryResponse struct {
	Hub      string                     `json:"hub"`
	Total    int                        `json:"total"`
	RTOCount int                        `json:"rto_count"`
	Items    []hubInventoryItemResponse `json:"items"`
}

type slaStatisticsResponse struct {
	PickupOverdue   int       `json:"pickup_overdue"`
	DeliveryOverdue int       `json:"delivery_overdue"`
	InTransitStale  int       `json:"in_transit_stale"`
	TotalBreaching  int       `json:"total_breaching"`
	GeneratedAt     time.Time `json:"generated_at"`
}

type slaViolationResponse struct {
	Rule           string `json:"rule"`
	OverdueSeconds int64  `json:"overdue_seconds"`
}

type shipmentSLAResponse struct {
	AWB        string                 `json:"awb"`
	Status     string                 `json:"status"`
	Violations []slaViolationResponse `json:"violations"`
}

type trackShipmentResponse struct {
	AWB               string     `json:"awb"`
	Status            string     `json:"status"`
	IsRTO             bool       `json:"is_rto"`
	CurrentHub        string     `json:"current_hub,omitempty"`
	BookedAt          time.Time  `json:"booked_at"`
	DeliveredAt       *time.Time `json:"delivered_at,omitempty"`
	EstimateAvailable bool       `json:"estimate_available"`
	Estimate          string     `json:"estimate,omitempty"`
	Verified          bool       `json:"verified"`
	ReceiverName      string     `json:"receiver_name,omitempty"`
	ReceiverAddress   string     `json:"receiver_address,omitempty"`
	PaymentMethod     string     `json:"payment_method,omitempty"`
	CODAmount         string     `json:"cod_amount,omitempty"`
	DeliveryAttempts  int        `json:"delivery_attempts,omitempty"`
	RTOReason         string     `json:"rto_reason,omitempty"`
}
