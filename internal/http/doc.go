// Package http provides HTTP handlers and middleware for the pousada API.
//
// The router exposes the following endpoints:
//   - POST /sessions: issues a session token. Body: {"email","password"}. Response:
//     {"token","expires_at","principal":{"user_id","name","is_admin"}} with the token
//     also surfaced via the `X-Session-Token` header and a `session_token` cookie.
//   - POST /sessions/refresh: rotates the current session token, extending its
//     validity window. DELETE /sessions/current revokes it and clears the cookie.
//   - POST /booking-requests: public stay proposal submission exchanging the
//     payloads defined in booking_request_handler.go. GET /booking-requests
//     (optionally ?status=) lists proposals for authenticated staff, and
//     POST /booking-requests/{id}/approve|reject|complete plus
//     DELETE /booking-requests/{id} drive the proposal lifecycle.
//   - GET /availability?room_id&check_in&check_out: public availability probe
//     answering {"available","reason"} without touching any state.
//   - GET /rooms, POST /rooms, GET/PUT/DELETE /rooms/{id}: room inventory
//     endpoints exchanging the `roomDTO` payload defined in room_handler.go.
//     Listing accepts ?q= for number or category search; mutations require admin
//     privileges.
//   - GET /bookings (?room_id, ?status=), POST /bookings,
//     PUT /bookings/{id}/status: stay management endpoints exchanging the
//     `bookingDTO` payload defined in booking_handler.go.
//   - GET /calendar?month=YYYY-MM&q= and GET /dashboard: staff month view and
//     landing page counters served by calendar_handler.go.
//   - GET /menu, POST /menu/items, PUT /menu/items/{id}: restaurant catalog
//     endpoints. GET /orders, POST /orders, PUT /orders/{id}/status manage room
//     service orders; placing an order requires the target room to be occupied.
//   - GET /guests (?q=) and GET /guests/{email}: aggregated guest directory and
//     per-guest stay history.
//   - GET /stats: occupancy and revenue aggregates, memoized between writes.
//   - GET /users, POST /users, PUT /users/{id}, DELETE /users/{id},
//     PUT /users/{id}/disabled: administrator controlled account management.
//
// Request/response DTOs live alongside their respective handlers so tests and
// documentation share the same ground truth.
package http
