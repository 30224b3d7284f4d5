// Command vmsctl is a terminal front end for the VMS API: sign in, review
// and edit the five profile sections, add certificates and store a
// signature drawn from a stroke file.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/vessel-management/internal/client"
	"github.com/iliyamo/vessel-management/internal/logging"
	"github.com/iliyamo/vessel-management/internal/model"
	"github.com/iliyamo/vessel-management/internal/profileview"
	"github.com/iliyamo/vessel-management/internal/session"
	"github.com/iliyamo/vessel-management/internal/signature"
)

const usage = `usage: vmsctl [-api URL] [-state FILE] [-v] <command> [flags]

commands:
  register     -email -password [-first -surname -role]
  login        -email -password
  logout
  whoami
  profile      show every profile section
  set-profile  -file profile.json
  set-kin      -file next_of_kin.json
  set-medical  -file medical.json
  add-cert     -type -from YYYY-MM-DD -to YYYY-MM-DD -issuer [-path]
  sign         -strokes strokes.json [-width 400 -height 200]
  dashboard
`

type app struct {
	sess *session.Session
	log  *zap.Logger
}

func main() {
	home, _ := os.UserHomeDir()
	apiURL := flag.String("api", envOr("VMS_API_URL", "http://localhost:8000"), "API base URL")
	state := flag.String("state", envOr("VMS_STATE_FILE", filepath.Join(home, ".vms", "session.json")), "session state file")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	level := "warn"
	if *verbose {
		level = "debug"
	}
	log, err := logging.New(level, "console", "vmsctl")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	store, err := session.OpenFileStore(*state)
	if err != nil {
		log.Fatal("open session store", zap.Error(err))
	}
	a := &app{sess: session.New(client.New(*apiURL, log), store, log), log: log}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := a.run(ctx, flag.Arg(0), flag.Args()[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "register":
		return a.register(ctx, args)
	case "login":
		return a.login(ctx, args)
	case "logout":
		return a.sess.Logout(ctx)
	}

	if err := a.sess.Restore(ctx); err != nil {
		return fmt.Errorf("session expired, log in again: %w", err)
	}
	if !a.sess.Authenticated() {
		return session.ErrNotSignedIn
	}

	switch cmd {
	case "whoami":
		u, _ := a.sess.User()
		return printJSON(u)
	case "profile":
		return a.showProfile(ctx)
	case "set-profile", "set-kin", "set-medical":
		return a.saveSection(ctx, cmd, args)
	case "add-cert":
		return a.addCertificate(ctx, args)
	case "sign":
		return a.sign(ctx, args)
	case "dashboard":
		d, err := a.sess.Client.Dashboard(ctx)
		if err != nil {
			return err
		}
		return printJSON(d)
	}
	return fmt.Errorf("unknown command %q", cmd)
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "password")
	first := fs.String("first", "", "first name")
	surname := fs.String("surname", "", "surname")
	role := fs.String("role", model.RoleCrew, "admin, captain, crew or manager")
	_ = fs.Parse(args)

	in := client.RegisterRequest{Email: *email, Password: *password, Role: *role}
	if *first != "" {
		in.FirstName = first
	}
	if *surname != "" {
		in.Surname = surname
	}
	resp, err := a.sess.Register(ctx, in)
	if err != nil {
		return err
	}
	fmt.Printf("%s (user_id %d)\n", resp.Message, resp.UserID)
	return nil
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "password")
	_ = fs.Parse(args)
	if *email == "" || *password == "" {
		return errors.New("-email and -password are required")
	}
	u, err := a.sess.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Printf("signed in as %s (%s)\n", u.Email, u.Role)
	return nil
}

func (a *app) loadView(ctx context.Context) *profileview.View {
	v := profileview.New(a.sess.Client, nil, a.log)
	v.Load(ctx)
	return v
}

func (a *app) showProfile(ctx context.Context) error {
	v := a.loadView(ctx)
	out := map[string]any{}
	failed := map[string]string{}
	for _, s := range profileview.Sections {
		if l := v.LoadState(s); l.State == profileview.LoadFailed {
			failed[string(s)] = l.Err.Error()
			continue
		}
		switch s {
		case profileview.SectionProfile:
			out[string(s)] = v.Profile()
		case profileview.SectionNextOfKin:
			out[string(s)] = v.NextOfKin()
		case profileview.SectionMedical:
			out[string(s)] = v.Medical().MedicalInfo
		case profileview.SectionCertificates:
			out[string(s)] = v.Certificates()
		case profileview.SectionSignature:
			sig := v.Signature()
			out[string(s)] = map[string]any{"signed": sig.SignatureData != "", "updated_at": sig.UpdatedAt}
		}
	}
	if len(failed) > 0 {
		out["unavailable"] = failed
	}
	return printJSON(out)
}

func (a *app) saveSection(ctx context.Context, cmd string, args []string) error {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	file := fs.String("file", "", "JSON file with the section's fields")
	_ = fs.Parse(args)
	if *file == "" {
		return errors.New("-file is required")
	}

	v := a.loadView(ctx)
	var (
		section profileview.Section
		err     error
	)
	switch cmd {
	case "set-profile":
		var p model.Profile
		if err := readJSON(*file, &p); err != nil {
			return err
		}
		v.SetProfile(p)
		section, err = profileview.SectionProfile, v.SaveProfile(ctx)
	case "set-kin":
		var n model.NextOfKin
		if err := readJSON(*file, &n); err != nil {
			return err
		}
		v.SetNextOfKin(n)
		section, err = profileview.SectionNextOfKin, v.SaveNextOfKin(ctx)
	case "set-medical":
		var m model.MedicalInfo
		if err := readJSON(*file, &m); err != nil {
			return err
		}
		v.EditMedical(func(f *profileview.MedicalForm) { f.MedicalInfo = m })
		section, err = profileview.SectionMedical, v.SaveMedical(ctx)
	}
	fmt.Println(v.Status(section).Message)
	return err
}

func (a *app) addCertificate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add-cert", flag.ExitOnError)
	typ := fs.String("type", "", "certificate type")
	from := fs.String("from", "", "valid from (YYYY-MM-DD)")
	to := fs.String("to", "", "expiry date (YYYY-MM-DD)")
	issuer := fs.String("issuer", "", "issuing authority")
	path := fs.String("path", "", "optional file path")
	_ = fs.Parse(args)

	draft := model.Certificate{CertificateType: model.CertificateType(*typ), IssuedBy: *issuer}
	var err error
	if *from != "" {
		if draft.ValidFrom, err = model.ParseDate(*from); err != nil {
			return err
		}
	}
	if *to != "" {
		if draft.ExpiryDate, err = model.ParseDate(*to); err != nil {
			return err
		}
	}
	if *path != "" {
		draft.FilePath = path
	}

	v := a.loadView(ctx)
	v.SetDraft(draft)
	err = v.AddCertificate(ctx)
	fmt.Println(v.Status(profileview.SectionCertificates).Message)
	if err != nil {
		return err
	}
	return printJSON(v.Certificates())
}

// strokeFile is the input of the sign command.  Points are screen
// positions inside Bounds.
type strokeFile struct {
	Bounds  *signature.Rect     `json:"bounds"`
	Strokes [][]signature.Point `json:"strokes"`
}

func (a *app) sign(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("sign", flag.ExitOnError)
	file := fs.String("strokes", "", "JSON stroke file")
	width := fs.Int("width", signature.DefaultWidth, "surface width")
	height := fs.Int("height", signature.DefaultHeight, "surface height")
	_ = fs.Parse(args)
	if *file == "" {
		return errors.New("-strokes is required")
	}

	var in strokeFile
	if err := readJSON(*file, &in); err != nil {
		return err
	}
	pad := signature.NewPad(*width, *height)
	if in.Bounds != nil {
		pad.SetBounds(*in.Bounds)
	}
	for _, stroke := range in.Strokes {
		if len(stroke) == 0 {
			continue
		}
		pad.PointerDown(stroke[0])
		for _, p := range stroke[1:] {
			pad.PointerMove(p)
		}
		pad.PointerUp()
	}
	if pad.Empty() {
		return errors.New("stroke file draws nothing")
	}

	v := profileview.New(a.sess.Client, nil, a.log)
	err := v.SaveSignature(ctx, pad)
	fmt.Println(v.Status(profileview.SectionSignature).Message)
	return err
}

func readJSON(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
