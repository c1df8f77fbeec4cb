package main

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"internmatch-client/internal/common/errors"
	"internmatch-client/internal/dashboard"
	"internmatch-client/internal/guard"
	"internmatch-client/internal/listings"
	"internmatch-client/internal/models"
	"internmatch-client/internal/profile"
	"internmatch-client/internal/recommend"
)

type command struct {
	run func(ctx context.Context, a *app, args []string) error
}

var commands = map[string]command{
	"login":     {run: runLogin},
	"signup":    {run: runSignup},
	"logout":    {run: runLogout},
	"whoami":    {run: runWhoami},
	"listings":  {run: runListings},
	"recommend": {run: runRecommend},
	"apply":     {run: markCommand(models.ApplicationApplied)},
	"save":      {run: markCommand(models.ApplicationSaved)},
	"profile":   {run: runProfile},
	"admin":     {run: runAdmin},
	"company":   {run: runCompany},
}

// ==========================
// Session
// ==========================

func runLogin(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "Email address")
	password := fs.String("password", "", "Password")
	role := fs.String("role", string(guard.RoleStudent), "student, admin or company")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if r := guard.Role(*role); r != guard.RoleStudent {
		if err := a.guard.SignIn(ctx, r, *email, *password); err != nil {
			return err
		}
		return printJSON(map[string]interface{}{"role": r, "status": "signed in"})
	}

	user, err := a.session.Authenticate(ctx, *email, *password)
	if err != nil {
		return err
	}
	return printJSON(map[string]interface{}{"status": models.SessionAuthenticated, "user": user})
}

func runSignup(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ContinueOnError)
	var form models.SignupForm
	var locations string
	fs.StringVar(&form.Name, "name", "", "Full name")
	fs.StringVar(&form.Email, "email", "", "Email address")
	fs.StringVar(&form.Password, "password", "", "Password (min 6 chars)")
	fs.StringVar(&form.ConfirmPassword, "confirm", "", "Password confirmation")
	fs.StringVar(&form.Branch, "branch", "", "Branch / major")
	fs.StringVar(&form.Year, "year", "", "1st, 2nd, 3rd, 4th or postgraduate")
	fs.StringVar(&form.Skills, "skills", "", "Comma-separated skills")
	fs.StringVar(&form.Interests, "interests", "", "Comma-separated interests")
	fs.StringVar(&form.GPA, "gpa", "", "CGPA (defaults to 3.0)")
	fs.StringVar(&locations, "locations", "", "Comma-separated preferred locations")
	if err := fs.Parse(args); err != nil {
		return err
	}
	form.LocationPref = strings.Split(locations, ",")

	user, err := a.session.Register(ctx, form)
	if err != nil {
		return err
	}
	return printJSON(map[string]interface{}{"status": models.SessionAuthenticated, "user": user})
}

func runLogout(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("logout", flag.ContinueOnError)
	role := fs.String("role", string(guard.RoleStudent), "student, admin or company")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if r := guard.Role(*role); r != guard.RoleStudent {
		return a.guard.SignOut(ctx, r)
	}
	return a.session.Logout(ctx)
}

func runWhoami(ctx context.Context, a *app, _ []string) error {
	if _, err := a.session.Hydrate(ctx); err != nil {
		return err
	}
	out := map[string]interface{}{"session": a.session.Snapshot()}
	for _, r := range []guard.Role{guard.RoleStudent, guard.RoleAdmin, guard.RoleCompany} {
		res, err := a.guard.Check(ctx, r)
		if err != nil {
			return err
		}
		out[string(r)] = res.Decision
	}
	return printJSON(out)
}

// ==========================
// Student views
// ==========================

func runListings(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("listings", flag.ContinueOnError)
	page := fs.Int("page", 1, "Page number")
	perPage := fs.Int("per-page", a.cfg.API.PerPage, "Listings per page")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.requireStudent(ctx); err != nil {
		return err
	}

	browser, src := listings.NewBrowser(a.api, *perPage, a.log)
	defer browser.Close()
	if err := browser.Load(ctx, *page); err != nil {
		return err
	}
	st := browser.State()
	return printJSON(map[string]interface{}{
		"page":       st.Page.Page,
		"totalPages": st.Page.TotalPages,
		"totalCount": st.Page.TotalCount,
		"stats":      src.Stats(),
		"items":      st.Page.Items,
	})
}

func runRecommend(ctx context.Context, a *app, _ []string) error {
	if err := a.requireStudent(ctx); err != nil {
		return err
	}
	if _, err := a.recs.Request(ctx); err != nil {
		return err
	}
	return printJSON(map[string]interface{}{
		"count":           a.recs.Count(),
		"recommendations": a.recs.View(),
	})
}

func markCommand(status models.ApplicationStatus) func(context.Context, *app, []string) error {
	return func(ctx context.Context, a *app, args []string) error {
		fs := flag.NewFlagSet(string(status), flag.ContinueOnError)
		id := fs.Int("id", 0, "Internship id")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if *id <= 0 {
			return errors.NewValidationError("--id is required", "id")
		}
		if err := a.requireStudent(ctx); err != nil {
			return err
		}
		if err := a.recs.Mark(ctx, *id, status); err != nil {
			return err
		}

		out := map[string]interface{}{"internshipId": *id, "status": status}
		if status == models.ApplicationApplied {
			// The link is a convenience; the application is already recorded.
			recs, err := a.recs.Ensure(ctx)
			if err != nil {
				a.log.Warn("apply link unavailable", map[string]interface{}{
					"internshipId": *id,
					"errorCode":    string(errors.CodeOf(err)),
				})
			}
			for _, r := range recs {
				if r.Internship.ID == *id {
					out["applyAt"] = recommend.ApplySearchURL(r.Internship)
					break
				}
			}
		}
		return printJSON(out)
	}
}

func runProfile(ctx context.Context, a *app, args []string) error {
	if err := a.requireStudent(ctx); err != nil {
		return err
	}
	if len(args) == 0 || args[0] == "show" {
		return printJSON(a.session.User())
	}
	if args[0] != "edit" {
		return errors.NewValidationError(fmt.Sprintf("unknown profile command %q", args[0]))
	}

	fs := flag.NewFlagSet("profile edit", flag.ContinueOnError)
	values := map[string]*string{
		profile.FieldName:         fs.String("name", "", "Full name"),
		profile.FieldMajor:        fs.String("major", "", "Major"),
		profile.FieldYear:         fs.String("year", "", "Year"),
		profile.FieldSkills:       fs.String("skills", "", "Comma-separated skills"),
		profile.FieldInterests:    fs.String("interests", "", "Comma-separated interests"),
		profile.FieldGPA:          fs.String("gpa", "", "CGPA"),
		profile.FieldLocationPref: fs.String("locations", "", "Comma-separated preferred locations"),
	}
	flagField := map[string]string{"locations": profile.FieldLocationPref}
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	if _, err := a.editor.Begin(); err != nil {
		return err
	}
	var setErr error
	fs.Visit(func(f *flag.Flag) {
		field := f.Name
		if mapped, ok := flagField[field]; ok {
			field = mapped
		}
		if setErr == nil {
			setErr = a.editor.Set(field, *values[field])
		}
	})
	if setErr != nil {
		a.editor.Cancel()
		return setErr
	}

	changed := a.editor.Changes()
	if len(changed) == 0 {
		a.editor.Cancel()
		return printJSON(map[string]interface{}{"changed": changed, "user": a.session.User()})
	}
	saved, err := a.editor.Submit(ctx)
	if err != nil {
		return err
	}
	return printJSON(map[string]interface{}{"changed": changed, "user": saved})
}

// ==========================
// Operator views
// ==========================

func runAdmin(ctx context.Context, a *app, args []string) error {
	if err := a.require(ctx, guard.RoleAdmin); err != nil {
		return err
	}
	sub := "list"
	if len(args) > 0 {
		sub, args = args[0], args[1:]
	}

	mgr := dashboard.NewListingManager(a.api, a.cfg.API.AdminPerPage, a.log)
	defer mgr.Close()

	fs := flag.NewFlagSet("admin "+sub, flag.ContinueOnError)
	page := fs.Int("page", 1, "Page number")

	switch sub {
	case "list":
		if err := fs.Parse(args); err != nil {
			return err
		}
		if err := mgr.Fetcher().Load(ctx, *page); err != nil {
			return err
		}
	case "create":
		var form models.ListingForm
		fs.StringVar(&form.Company, "company", "", "Company")
		fs.StringVar(&form.Title, "title", "", "Title")
		fs.StringVar(&form.Description, "description", "", "Description")
		fs.StringVar(&form.RequiredSkills, "skills", "", "Required skills")
		fs.StringVar(&form.Location, "location", "", "Location")
		fs.StringVar(&form.Duration, "duration", "", "Duration")
		fs.StringVar(&form.Stipend, "stipend", "", "Stipend")
		fs.StringVar(&form.Deadline, "deadline", "", "Deadline (YYYY-MM-DD or Rolling)")
		fs.StringVar(&form.Industry, "industry", "", "Industry")
		if err := fs.Parse(args); err != nil {
			return err
		}
		created, err := mgr.Create(ctx, form)
		if err != nil {
			return err
		}
		fmt.Printf("created internship %d\n", created.ID)
	case "delete":
		id := fs.Int("id", 0, "Internship id")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if *id <= 0 {
			return errors.NewValidationError("--id is required", "id")
		}
		if err := mgr.Fetcher().Load(ctx, *page); err != nil {
			return err
		}
		if err := mgr.Delete(ctx, *id); err != nil {
			return err
		}
	case "purge-expired":
		n, err := mgr.DeleteExpired(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("%d expired internships deleted successfully!\n", n)
	default:
		return errors.NewValidationError(fmt.Sprintf("unknown admin command %q", sub))
	}

	st := mgr.State()
	return printJSON(map[string]interface{}{
		"page":       st.Page.Page,
		"totalPages": st.Page.TotalPages,
		"totalCount": st.Page.TotalCount,
		"stats":      mgr.Stats(),
		"items":      models.ListingRows(st.Page.Items, time.Now()),
	})
}

func runCompany(ctx context.Context, a *app, args []string) error {
	if err := a.require(ctx, guard.RoleCompany); err != nil {
		return err
	}
	if len(args) == 0 || args[0] != "applicants" {
		return errors.NewValidationError("usage: company applicants [--listing ID]")
	}
	fs := flag.NewFlagSet("company applicants", flag.ContinueOnError)
	listingID := fs.Int("listing", 0, "Only applicants for this internship")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	review := dashboard.NewApplicantReview(a.api, 0, a.log)
	if err := review.Load(ctx); err != nil {
		return err
	}

	if *listingID > 0 {
		listing, _ := review.Listing(*listingID)
		return printJSON(map[string]interface{}{
			"internship": listing,
			"applicants": review.ApplicantsFor(*listingID),
		})
	}

	type applicantSummary struct {
		models.Profile
		Applications []models.Application `json:"applications"`
	}
	all := review.AllApplicants()
	out := make([]applicantSummary, len(all))
	for i, u := range all {
		out[i] = applicantSummary{Profile: u, Applications: review.ApplicationsOf(u.ID)}
	}
	return printJSON(map[string]interface{}{
		"totalStudents":     len(review.Users()),
		"activeInternships": len(review.ActiveListings()),
		"applicants":        out,
	})
}
