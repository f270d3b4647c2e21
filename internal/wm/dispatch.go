package wm

// Request is one already-framed control protocol command. Unused fields are
// left zero; each op validates what it needs before mutating anything.
type Request struct {
	Op      string `json:"op"`
	Select  string `json:"select,omitempty"`
	Dir     string `json:"dir,omitempty"`
	Delta   int    `json:"delta,omitempty"`
	Mods    uint32 `json:"mods,omitempty"`
	Keysym  uint32 `json:"keysym,omitempty"`
	Command string `json:"command,omitempty"`
}

func parseCycle(s string) (Cycle, error) {
	switch s {
	case "prev":
		return CyclePrev, nil
	case "next":
		return CycleNext, nil
	}
	return 0, ErrInvalidParameter
}

func parseDirection(s string) (Direction, error) {
	switch s {
	case "left":
		return DirLeft, nil
	case "right":
		return DirRight, nil
	case "up":
		return DirUp, nil
	case "down":
		return DirDown, nil
	}
	return 0, ErrInvalidParameter
}

// Dispatch maps one command onto a mutation against the current focus
// chain. Validation comes before any mutation: a failed command returns
// exactly one taxonomy error and has no side effect. The report is non-empty
// only for state.query.
func (s *Server) Dispatch(req Request) (string, error) {
	switch req.Op {
	case "client.focus":
		cycle, err := parseCycle(req.Select)
		if err != nil {
			return "", err
		}
		c := s.CurrentClient()
		if c == nil {
			return "", ErrClientNotFound
		}
		d := c.desktop
		sib := d.tree.FindSibling(c.node, cycle)
		if sib == nilNode {
			return "", ErrClientNotFound
		}
		d.FocusClient(d.tree.nodes[sib].client, true)
		return "", nil

	case "client.fullscreen":
		c := s.CurrentClient()
		if c == nil {
			return "", ErrClientNotFound
		}
		c.desktop.SetFullscreen(!c.desktop.Fullscreen)
		return "", nil

	case "client.kill":
		c := s.CurrentClient()
		if c == nil {
			return "", ErrClientNotFound
		}
		s.scene.CloseClient(c.Window)
		return "", nil

	case "client.resize":
		dir, err := parseDirection(req.Dir)
		if err != nil {
			return "", err
		}
		c := s.CurrentClient()
		if c == nil {
			return "", ErrClientNotFound
		}
		t := c.desktop.tree
		p := t.resizeMatch(c.node, dir)
		if p == nilNode {
			return "", ErrInvalidParameter
		}
		ratio := t.nodes[p].ratio
		// The boundary check is deliberately asymmetric; 0 and 100 are
		// never reached.
		if req.Delta < 0 && ratio+req.Delta <= 0 {
			return "", ErrInvalidParameter
		}
		if req.Delta > 0 && ratio+req.Delta >= 100 {
			return "", ErrInvalidParameter
		}
		t.nodes[p].ratio = ratio + req.Delta
		c.desktop.Recalculate()
		return "", nil

	case "client.swap":
		cycle, err := parseCycle(req.Select)
		if err != nil {
			return "", err
		}
		c := s.CurrentClient()
		if c == nil {
			return "", ErrClientNotFound
		}
		d := c.desktop
		sib := d.tree.FindSibling(c.node, cycle)
		if sib == nilNode {
			return "", ErrClientNotFound
		}
		d.tree.Swap(c.node, sib)
		d.Recalculate()
		return "", nil

	case "client.to_desktop":
		cycle, err := parseCycle(req.Select)
		if err != nil {
			return "", err
		}
		c := s.CurrentClient()
		if c == nil {
			return "", ErrClientNotFound
		}
		d := c.desktop
		target := d.screen.FindSibling(cycle)
		if target == d {
			return "", nil
		}
		if err := d.RemoveClient(c); err != nil {
			return "", err
		}
		target.AddClient(c)
		return "", nil

	case "client.to_screen":
		cycle, err := parseCycle(req.Select)
		if err != nil {
			return "", err
		}
		c := s.CurrentClient()
		if c == nil {
			return "", ErrClientNotFound
		}
		target := s.FindSiblingScreen(cycle)
		if target == nil {
			return "", ErrScreenNotFound
		}
		if target == c.desktop.screen {
			return "", nil
		}
		if err := c.desktop.RemoveClient(c); err != nil {
			return "", err
		}
		target.FocusedDesktop().AddClient(c)
		return "", nil

	case "desktop.focus":
		cycle, err := parseCycle(req.Select)
		if err != nil {
			return "", err
		}
		scr := s.CurrentScreen()
		if scr == nil {
			return "", ErrScreenNotFound
		}
		scr.FocusDesktop(scr.FindSibling(cycle))
		return "", nil

	case "desktop.kill":
		scr := s.CurrentScreen()
		if scr == nil {
			return "", ErrScreenNotFound
		}
		d := scr.FocusedDesktop()
		if d == nil {
			return "", ErrDesktopNotFound
		}
		return "", scr.RemoveDesktop(d)

	case "desktop.new":
		scr := s.CurrentScreen()
		if scr == nil {
			return "", ErrScreenNotFound
		}
		scr.AddDesktop(s.nextDesktopName())
		return "", nil

	case "desktop.swap":
		cycle, err := parseCycle(req.Select)
		if err != nil {
			return "", err
		}
		scr := s.CurrentScreen()
		if scr == nil {
			return "", ErrScreenNotFound
		}
		d := scr.FocusedDesktop()
		sib := scr.FindSibling(cycle)
		if d == nil || sib == d {
			return "", nil
		}
		scr.SwapDesktops(d, sib)
		return "", nil

	case "screen.focus":
		cycle, err := parseCycle(req.Select)
		if err != nil {
			return "", err
		}
		sib := s.FindSiblingScreen(cycle)
		if sib == nil {
			return "", ErrScreenNotFound
		}
		s.FocusScreen(sib)
		return "", nil

	case "tree.rotate":
		c := s.CurrentClient()
		if c == nil {
			return "", ErrClientNotFound
		}
		d := c.desktop
		p := d.tree.parentOf(c.node)
		if p == nilNode {
			return "", nil
		}
		d.tree.Rotate(p)
		d.Recalculate()
		return "", nil

	case "state.query":
		return s.StatusReport(), nil

	case "state.quit":
		s.requestExit()
		return "", nil

	case "binding.add":
		return "", s.bindings.Add(Binding{
			Mods:    req.Mods,
			Keysym:  req.Keysym,
			Command: req.Command,
		})
	}

	return "", ErrInvalidParameter
}
