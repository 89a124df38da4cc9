package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// OperationResult resultado estructurado de los flujos de estación: nunca se propaga una
// excepción hacia la UI, siempre se devuelve success=false con un código y un mensaje legible.
type OperationResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message"`
}

// Failure construye un OperationResult fallido a partir de un error del dominio.
func Failure(err error) OperationResult {
	return OperationResult{Success: false, Error: ErrorCode(err), Message: ErrorMessage(err)}
}
