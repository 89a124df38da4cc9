package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Asistencia-api/internal/application/dto"
	"github.com/jhoicas/Asistencia-api/internal/application/enrollment"
	"github.com/jhoicas/Asistencia-api/internal/application/identification"
	"github.com/jhoicas/Asistencia-api/internal/application/timeclock"
	"github.com/jhoicas/Asistencia-api/internal/infrastructure/device"
	"github.com/jhoicas/Asistencia-api/internal/infrastructure/notifier"
)

// StationHandler endpoints de los kioscos: muestras del lector, marcación, enrolamiento y estado.
// Punch, Identify y Enroll bloquean hasta que el agente de la estación empuja la muestra a
// POST /samples (o vence la captura).
type StationHandler struct {
	stations *device.Registry
	board    *notifier.Board
	enroll   *enrollment.UseCase
	identify *identification.UseCase
	punch    *timeclock.UseCase
}

// NewStationHandler construye el handler.
func NewStationHandler(
	stations *device.Registry,
	board *notifier.Board,
	enroll *enrollment.UseCase,
	identify *identification.UseCase,
	punch *timeclock.UseCase,
) *StationHandler {
	return &StationHandler{stations: stations, board: board, enroll: enroll, identify: identify, punch: punch}
}

// StationStatusResponse estado de un kiosco y sus mensajes recientes.
type StationStatusResponse struct {
	Station  device.StationInfo `json:"station"`
	Messages []notifier.Message `json:"messages"`
}

// station crea la estación si hace falta; solo para los endpoints que inician una captura.
func (h *StationHandler) station(c *fiber.Ctx) (*device.Station, error) {
	st, err := h.stations.Station(c.Params("id"))
	if err != nil {
		return nil, stationError(c, err)
	}
	return st, nil
}

func stationError(c *fiber.Ctx, err error) error {
	if errors.Is(err, device.ErrUnknownStation) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "UNKNOWN_STATION", Message: err.Error()})
	}
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_STATION", Message: "id de estación inválido"})
}

// Samples godoc
// @Summary      Entregar muestra del lector
// @Description  El agente de la estación envía la imagen cruda de la huella (PNG, BMP o RAW según la configuración).
// @Tags         stations
// @Security     Bearer
// @Accept       octet-stream
// @Produce      json
// @Param        id   path  string  true  "ID de la estación"
// @Success      202  {object}  map[string]bool
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/stations/{id}/samples [post]
func (h *StationHandler) Samples(c *fiber.Ctx) error {
	st, err := h.stations.Lookup(c.Params("id"))
	if err != nil {
		return stationError(c, err)
	}
	if st == nil {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NOT_ACQUIRING", Message: device.ErrNotAcquiring.Error()})
	}
	if err := st.Device.Push(c.Body()); err != nil {
		switch {
		case errors.Is(err, device.ErrNotAcquiring):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NOT_ACQUIRING", Message: err.Error()})
		case errors.Is(err, device.ErrInvalidSample):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INVALID_SAMPLE", Message: err.Error()})
		}
		return writeError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"accepted": true})
}

// Punch godoc
// @Summary      Marcar entrada o salida
// @Tags         stations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la estación"
// @Success      201  {object}  dto.PunchResult
// @Failure      404  {object}  dto.PunchResult
// @Failure      408  {object}  dto.PunchResult
// @Failure      409  {object}  dto.PunchResult
// @Router       /api/stations/{id}/punch [post]
func (h *StationHandler) Punch(c *fiber.Ctx) error {
	st, err := h.station(c)
	if st == nil {
		return err
	}
	res := h.punch.Punch(c.UserContext(), st.ID, st.Session)
	return writeResult(c, res.OperationResult, fiber.StatusCreated, res)
}

// Identify godoc
// @Summary      Identificar sin marcar
// @Tags         stations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la estación"
// @Success      200  {object}  dto.IdentificationResult
// @Failure      404  {object}  dto.IdentificationResult
// @Router       /api/stations/{id}/identify [post]
func (h *StationHandler) Identify(c *fiber.Ctx) error {
	st, err := h.station(c)
	if st == nil {
		return err
	}
	res := h.identify.IdentifyResult(c.UserContext(), st.ID, st.Session)
	return writeResult(c, res.OperationResult, fiber.StatusOK, res)
}

// Enroll godoc
// @Summary      Enrolar empleado
// @Description  Dos capturas de la misma huella con una pausa; si coinciden y no existe, se registra el empleado.
// @Tags         stations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "ID de la estación"
// @Param        body  body  dto.EnrollRequest  true  "Datos del empleado"
// @Success      201   {object}  dto.EnrollmentResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.EnrollmentResult
// @Failure      422   {object}  dto.EnrollmentResult
// @Router       /api/stations/{id}/enroll [post]
func (h *StationHandler) Enroll(c *fiber.Ctx) error {
	st, err := h.station(c)
	if st == nil {
		return err
	}
	var in dto.EnrollRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if strings.TrimSpace(in.Name) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
	}
	res := h.enroll.EnrollResult(c.UserContext(), st.ID, st.Session, in.Profile())
	return writeResult(c, res.OperationResult, fiber.StatusCreated, res)
}

// Status godoc
// @Summary      Estado del kiosco
// @Tags         stations
// @Security     Bearer
// @Produce      json
// @Param        id     path   string  true   "ID de la estación"
// @Param        after  query  int     false  "Solo mensajes con seq mayor"
// @Success      200  {object}  StationStatusResponse
// @Router       /api/stations/{id}/status [get]
func (h *StationHandler) Status(c *fiber.Ctx) error {
	id := c.Params("id")
	st, err := h.stations.Lookup(id)
	if err != nil {
		return stationError(c, err)
	}
	info := device.StationInfo{ID: id}
	if st != nil {
		info.Format = string(st.Device.Format())
		info.Acquiring = st.Device.Acquiring()
		info.Busy = st.Session.Busy()
	}
	after := c.QueryInt("after", 0)
	if after < 0 {
		after = 0
	}
	msgs := h.board.Since(id, uint64(after))
	if msgs == nil {
		msgs = []notifier.Message{}
	}
	return c.JSON(StationStatusResponse{Station: info, Messages: msgs})
}

// List godoc
// @Summary      Listar estaciones conocidas
// @Tags         stations
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  device.StationInfo
// @Router       /api/stations [get]
func (h *StationHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.stations.List())
}
