package dto

import (
	"hotelbooking/internal/domains/view/model"
	"hotelbooking/shared/role"
)

type DecisionResponse struct {
	View       string `json:"view"`
	Action     string `json:"action"`
	RedirectTo string `json:"redirect_to,omitempty"`
	Role       string `json:"role"`
}

func (d *DecisionResponse) FromModel(m model.Decision, current role.Role) {
	d.View = m.View
	d.Action = m.Action
	d.RedirectTo = m.RedirectTo
	d.Role = current.String()
}

type ViewResponse struct {
	Name     string `json:"name"`
	Requires string `json:"requires,omitempty"`
	Allowed  bool   `json:"allowed"`
}

type NavigationResponse struct {
	Role        string         `json:"role"`
	DefaultView string         `json:"default_view"`
	Views       []ViewResponse `json:"views"`
}

func (n *NavigationResponse) FromRegistry(views []model.View, current role.Role) {
	n.Role = current.String()
	n.DefaultView = model.DefaultFor(current)
	n.Views = make([]ViewResponse, len(views))

	for i, v := range views {
		n.Views[i] = ViewResponse{
			Name:     v.Name,
			Requires: v.Requirement(),
			Allowed:  model.Decide(v, current).Action == model.ActionRender,
		}
	}
}
