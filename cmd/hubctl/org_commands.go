package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/projectshub/go-hub-client/organizations"
)

func (a *app) org(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("org needs a subcommand: create, list, members or invite")
	}

	switch args[0] {
	case "create":
		return a.orgCreate(ctx, args[1:])
	case "list":
		return a.orgList(ctx)
	case "members":
		return a.orgMembers(ctx, args[1:])
	case "invite":
		return a.orgInvite(ctx, args[1:])
	default:
		return fmt.Errorf("unknown org subcommand %q", args[0])
	}
}

func (a *app) orgCreate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("org create", flag.ContinueOnError)
	name := fs.String("name", "", "organization name")
	planCode := fs.String("plan", "FREE", "plan code (FREE, PREMIUM or PRO)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	user, err := a.requireAuth()
	if err != nil {
		return err
	}

	plan := organizations.PlanByCode(strings.ToUpper(*planCode))
	if plan == nil {
		return fmt.Errorf("unknown plan %q", *planCode)
	}

	org, err := a.orgs.Create(ctx, organizations.CreateRequest{
		Name:            *name,
		PlanID:          plan.ID.String(),
		CreatedByUserID: user.UserID,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Organization %q created under the %s plan.\n", org.Name, plan.Label)
	return printJSON(org)
}

func (a *app) orgList(ctx context.Context) error {
	user, err := a.requireAuth()
	if err != nil {
		return err
	}

	orgs, err := a.orgs.ListForUser(ctx, user.UserID)
	if err != nil {
		return err
	}
	if len(orgs) == 0 {
		fmt.Println("No organizations yet.")
		return nil
	}
	return printJSON(orgs)
}

func (a *app) orgMembers(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("org members", flag.ContinueOnError)
	orgID := fs.String("org", "", "organization id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	user, err := a.requireAuth()
	if err != nil {
		return err
	}

	members, err := a.orgs.Members(ctx, *orgID, user.UserID)
	if err != nil {
		return err
	}
	if len(members) == 0 {
		fmt.Println("No members found.")
		return nil
	}
	return printJSON(members)
}

func (a *app) orgInvite(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("org invite", flag.ContinueOnError)
	orgID := fs.String("org", "", "organization id")
	email := fs.String("email", "", "email to invite")
	manager := fs.Bool("manager", false, "invite as manager instead of employee")
	if err := fs.Parse(args); err != nil {
		return err
	}

	user, err := a.requireAuth()
	if err != nil {
		return err
	}

	role := organizations.RoleEmployee
	if *manager {
		role = organizations.RoleManager
	}

	invitation, err := a.orgs.InviteMember(ctx, *orgID, organizations.InviteRequest{
		InvitedByUserID: user.UserID,
		Email:           *email,
		Role:            role,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Invitation sent to %s as %s.\nLink: %s\n", invitation.Email, invitation.Role, invitation.InvitationLink)
	return nil
}

func (a *app) invite(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("invite needs a subcommand: preview or accept")
	}

	fs := flag.NewFlagSet("invite "+args[0], flag.ContinueOnError)
	token := fs.String("token", "", "invitation token")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	switch args[0] {
	case "preview":
		preview, err := a.orgs.PreviewInvitation(ctx, *token)
		if err != nil {
			return err
		}
		fmt.Printf("Invitation to join %q.\n", preview.OrganizationName)
		return nil
	case "accept":
		result, err := a.orgs.AcceptInvitation(ctx, *token)
		if err != nil {
			return err
		}
		if result.Message != "" {
			fmt.Println(result.Message)
		} else {
			fmt.Println("Invitation accepted successfully.")
		}
		return nil
	default:
		return fmt.Errorf("unknown invite subcommand %q", args[0])
	}
}
