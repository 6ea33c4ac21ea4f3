package v1

import (
	"net/http"

	"github.com/tinoosan/cinerator/internal/catalog"
)

func (s *Server) toCastInfo(c catalog.CastInfo) castInfoDTO { return toCastInfoDTO(c, s.persons.Now()) }

func (s *Server) writeCastInfos(w http.ResponseWriter, r *http.Request, cs []catalog.CastInfo, err error) {
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeCollection(w, r, s.links.castInfos, "castInfos", mapAll(cs, s.toCastInfo))
}

func (s *Server) listCastInfos(w http.ResponseWriter, r *http.Request) {
	req, err := pageRequest(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := s.castInfos.List(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writePage(w, r, s.links.castInfos, "castInfos", catalog.MapPage(p, s.toCastInfo), req)
}

func (s *Server) getCastInfo(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	c, err := s.castInfos.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeResource(w, s.links.castInfos, s.toCastInfo(c))
}

func (s *Server) createCastInfo(w http.ResponseWriter, r *http.Request) {
	body := bodyFrom[castInfoRequest](r)
	c, err := s.castInfos.Create(r.Context(), body.input())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeCreated(w, s.links.castInfos, s.toCastInfo(c))
}

func (s *Server) putCastInfo(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	body := bodyFrom[castInfoRequest](r)
	res, err := s.castInfos.Put(r.Context(), id, body.input())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeUpsert(w, s.links.castInfos, res.Created(), s.toCastInfo(res.Value))
}

func (s *Server) deleteCastInfo(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.castInfos.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	noContent(w)
}
