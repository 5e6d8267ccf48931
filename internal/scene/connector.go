package scene

// The caption connector runs from the selected star's projected position to a
// fixed normalized anchor in the lower-left, where the info caption renders.
// It is recomputed from the current camera pose every tick, so it tracks the
// star as the camera eases toward it.
var connectorAnchor = NDC{X: -0.7, Y: -0.6}

// Connector returns the endpoints of the caption connector in grid cells:
// from the selected star to the on-screen anchor. ok is false when nothing is
// selected or the star is currently behind the camera.
func (c *Controller) Connector(vp Viewport) (from, to Cell, ok bool) {
	if !c.Sel.Active {
		return Cell{}, Cell{}, false
	}

	ndc, visible := ProjectPoint(c.Cam, c.Sel.Pos, vp)
	if !visible {
		return Cell{}, Cell{}, false
	}

	return vp.ToCell(ndc), vp.ToCell(connectorAnchor), true
}
