// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package api provides the HTTP interface of the recommendation service.

Routing uses go-chi/chi. Every route shares request id, real IP, request
logging, panic recovery, CORS and Prometheus middleware; /api/v1 routes are
additionally rate limited per client IP with go-chi/httprate.

# Identifiers

Movies are addressed by TMDB id on the wire. Handlers resolve TMDB ids to
internal catalog ids before calling the engine and map results back, so
every recommendation entry is {id, title, poster_path} with id a TMDB id.

# Responses

All JSON responses use the APIResponse envelope, encoded with goccy/go-json:

	{"success": true, "data": [...], "meta": {"request_id": "...", "timestamp": "...", "count": 3}}
	{"success": false, "error": {"code": "VALIDATION_ERROR", "message": "limit must be at least 1"}}

Invalid parameters answer 400 VALIDATION_ERROR, unknown movies on detail
routes 404, an open TMDB circuit 503 and anything else 500 INTERNAL_ERROR
with the cause logged server-side only. Unknown ids on recommendation routes
return an empty list.

# Endpoints

	GET  /health
	GET  /metrics
	GET  /api/v1/recommend/content/{tmdb_id}?limit=
	GET  /api/v1/recommend/crew/{tmdb_id}?limit=
	GET  /api/v1/recommend/franchise/{tmdb_id}?limit=
	GET  /api/v1/recommend/collaborative?user_id=&limit=
	GET  /api/v1/recommend/hybrid?movie_id=&user_id=&limit=
	GET  /api/v1/recommend/popular?limit=
	GET  /api/v1/movies/{tmdb_id}
	GET  /api/v1/movies/{tmdb_id}/reviews
	POST /api/v1/reviews
	POST /api/v1/watchlist/toggle
	POST /api/v1/watched/toggle
	GET  /api/v1/users/{user_id}/watchlist
	GET  /api/v1/users/{user_id}/watched
	POST /api/v1/admin/train
*/
package api
