/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package claim

import (
	"context"
	"testing"
	"time"

	apiextv1 "k8s.io/apiextensions-apiserver/pkg/apis/apiextensions/v1"
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/apimachinery/pkg/types"
	dynamicfake "k8s.io/client-go/dynamic/fake"
	corefake "k8s.io/client-go/kubernetes/fake"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"

	poolboyv1 "github.com/redhat-cop/poolboy/api/v1"
	ctrlshared "github.com/redhat-cop/poolboy/internal/controller"
	"github.com/redhat-cop/poolboy/internal/config"
	"github.com/redhat-cop/poolboy/internal/controller/handle"
	"github.com/redhat-cop/poolboy/internal/index"
	"github.com/redhat-cop/poolboy/internal/providers"
	"github.com/redhat-cop/poolboy/internal/requester"
	"github.com/redhat-cop/poolboy/internal/value"
	"github.com/redhat-cop/poolboy/internal/watch"
)

func jsonOf(t *testing.T, v interface{}) *apiextv1.JSON {
	t.Helper()
	raw, err := value.ToJSON(v)
	if err != nil {
		t.Fatalf("encoding test fixture: %v", err)
	}
	return raw
}

func testScheme(t *testing.T) *runtime.Scheme {
	t.Helper()
	scheme := runtime.NewScheme()
	if err := poolboyv1.AddToScheme(scheme); err != nil {
		t.Fatalf("adding scheme: %v", err)
	}
	return scheme
}

func minimalProvider(name string) *poolboyv1.ResourceProvider {
	return &poolboyv1.ResourceProvider{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: "poolboy"},
		Spec: poolboyv1.ResourceProviderSpec{
			Template: poolboyv1.TemplateSpec{Style: poolboyv1.TemplateStyleJinja2},
		},
	}
}

func newTestRuntime(reg *providers.Registry) *ctrlshared.Runtime {
	return ctrlshared.New(&config.Config{
		OperatorNamespace:    "poolboy",
		ManageClaimsInterval: time.Minute,
	}, reg, index.New(), nil, nil, nil, nil)
}

func TestReconcile_ProviderModeCreatesHandleOnFirstBind(t *testing.T) {
	scheme := testScheme(t)
	provider := minimalProvider("widget-provider")
	reg := providers.NewRegistry()
	reg.Upsert(provider)

	claimObj := &poolboyv1.ResourceClaim{
		ObjectMeta: metav1.ObjectMeta{Name: "my-claim", Namespace: "apps"},
		Spec:       poolboyv1.ResourceClaimSpec{Provider: &poolboyv1.ProviderRef{Name: provider.Name}},
	}

	c := fake.NewClientBuilder().WithScheme(scheme).
		WithObjects(claimObj).
		WithStatusSubresource(claimObj).
		Build()

	rt := newTestRuntime(reg)
	r := &Reconciler{Client: c, Scheme: scheme, Recorder: nil, Runtime: rt}

	req := ctrl.Request{NamespacedName: types.NamespacedName{Namespace: "apps", Name: "my-claim"}}

	if _, err := r.Reconcile(context.Background(), req); err != nil {
		t.Fatalf("first reconcile (finalizer add): %v", err)
	}

	res, err := r.Reconcile(context.Background(), req)
	if err != nil {
		t.Fatalf("second reconcile (full bind): %v", err)
	}
	if res.RequeueAfter != time.Minute {
		t.Fatalf("expected requeue after ManageClaimsInterval, got %v", res.RequeueAfter)
	}

	var claim poolboyv1.ResourceClaim
	if err := c.Get(context.Background(), req.NamespacedName, &claim); err != nil {
		t.Fatalf("fetching claim: %v", err)
	}
	if claim.Status.ResourceHandle == nil {
		t.Fatal("expected claim to be bound to a resource handle")
	}
	if claim.Status.Provider == nil || claim.Status.Provider.Name != provider.Name {
		t.Fatalf("expected status.provider.name %q, got %+v", provider.Name, claim.Status.Provider)
	}

	var handles poolboyv1.ResourceHandleList
	if err := c.List(context.Background(), &handles); err != nil {
		t.Fatalf("listing handles: %v", err)
	}
	if len(handles.Items) != 1 {
		t.Fatalf("expected exactly one handle created, got %d", len(handles.Items))
	}
	h := handles.Items[0]
	if h.Spec.ResourceClaim == nil || h.Spec.ResourceClaim.Name != claim.Name || h.Spec.ResourceClaim.Namespace != claim.Namespace {
		t.Fatalf("handle not bound back to claim: %+v", h.Spec.ResourceClaim)
	}
	if h.Name != claim.Status.ResourceHandle.Name {
		t.Fatalf("claim.status.resourceHandle.name %q does not match created handle %q", claim.Status.ResourceHandle.Name, h.Name)
	}
}

func TestReconcile_PendingApprovalBlocksBind(t *testing.T) {
	scheme := testScheme(t)
	provider := minimalProvider("approval-provider")
	provider.Spec.Approval = &poolboyv1.ApprovalSpec{Required: true}
	reg := providers.NewRegistry()
	reg.Upsert(provider)

	claimObj := &poolboyv1.ResourceClaim{
		ObjectMeta: metav1.ObjectMeta{
			Name: "gated-claim", Namespace: "apps",
			Finalizers: []string{poolboyv1.PoolboyClaimFinalizer()},
		},
		Spec: poolboyv1.ResourceClaimSpec{Provider: &poolboyv1.ProviderRef{Name: provider.Name}},
	}

	c := fake.NewClientBuilder().WithScheme(scheme).
		WithObjects(claimObj).
		WithStatusSubresource(claimObj).
		Build()

	rt := newTestRuntime(reg)
	r := &Reconciler{Client: c, Scheme: scheme, Recorder: nil, Runtime: rt}
	req := ctrl.Request{NamespacedName: types.NamespacedName{Namespace: "apps", Name: "gated-claim"}}

	if _, err := r.Reconcile(context.Background(), req); err != nil {
		t.Fatalf("reconcile: %v", err)
	}

	var claim poolboyv1.ResourceClaim
	if err := c.Get(context.Background(), req.NamespacedName, &claim); err != nil {
		t.Fatalf("fetching claim: %v", err)
	}
	if claim.Status.Approval == nil || claim.Status.Approval.State != "pending" {
		t.Fatalf("expected status.approval.state=pending, got %+v", claim.Status.Approval)
	}
	if claim.Status.ResourceHandle != nil {
		t.Fatal("claim should not be bound while approval is pending")
	}

	var handles poolboyv1.ResourceHandleList
	if err := c.List(context.Background(), &handles); err != nil {
		t.Fatalf("listing handles: %v", err)
	}
	if len(handles.Items) != 0 {
		t.Fatalf("expected no handle created while approval is pending, got %d", len(handles.Items))
	}
}

func widgetGVK() schema.GroupVersionKind {
	return schema.GroupVersionKind{Group: "example.com", Version: "v1", Kind: "Widget"}
}

func widgetRESTMapper() meta.RESTMapper {
	m := meta.NewDefaultRESTMapper([]schema.GroupVersion{widgetGVK().GroupVersion()})
	m.Add(widgetGVK(), meta.RESTScopeNamespace)
	return m
}

// TestReconcile_ProviderModeProjectsTemplateIntoDownstreamResource covers
// the path TestReconcile_ProviderModeCreatesHandleOnFirstBind doesn't:
// a provider that actually defines template.definition must have that
// body (rendered against the claim's parameter values) carried onto the
// ResourceHandle and then actually created downstream once the handle
// reconciler runs.
func TestReconcile_ProviderModeProjectsTemplateIntoDownstreamResource(t *testing.T) {
	scheme := testScheme(t)

	provider := minimalProvider("widget-provider")
	provider.Spec.Parameters = []poolboyv1.ParameterSpec{{Name: "size"}}
	provider.Spec.Template.Definition = jsonOf(t, map[string]interface{}{
		"apiVersion": "example.com/v1",
		"kind":       "Widget",
		"spec":       map[string]interface{}{"size": "{{ size }}"},
	})
	reg := providers.NewRegistry()
	reg.Upsert(provider)

	claimObj := &poolboyv1.ResourceClaim{
		ObjectMeta: metav1.ObjectMeta{Name: "my-claim", Namespace: "apps"},
		Spec: poolboyv1.ResourceClaimSpec{
			Provider: &poolboyv1.ProviderRef{
				Name:            provider.Name,
				ParameterValues: jsonOf(t, map[string]interface{}{"size": "large"}),
			},
		},
	}

	c := fake.NewClientBuilder().WithScheme(scheme).
		WithObjects(claimObj).
		WithStatusSubresource(claimObj, &poolboyv1.ResourceHandle{}).
		Build()

	dynScheme := runtime.NewScheme()
	listKinds := map[schema.GroupVersionResource]string{
		{Group: "example.com", Version: "v1", Resource: "widgets"}: "WidgetList",
	}
	dyn := dynamicfake.NewSimpleDynamicClientWithCustomListKinds(dynScheme, listKinds)
	mapper := widgetRESTMapper()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	watchRegistry := watch.New(ctx, dyn, mapper, time.Minute, nil)
	req := requester.New(corefake.NewSimpleClientset(), dyn)

	rt := ctrlshared.New(&config.Config{
		OperatorNamespace:    "poolboy",
		ManageClaimsInterval: time.Minute,
		ManageHandlesInterval: time.Minute,
	}, reg, index.New(), watchRegistry, req, dyn, mapper)

	claimReconciler := &Reconciler{Client: c, Scheme: scheme, Runtime: rt}
	claimReq := ctrl.Request{NamespacedName: types.NamespacedName{Namespace: "apps", Name: "my-claim"}}

	if _, err := claimReconciler.Reconcile(ctx, claimReq); err != nil {
		t.Fatalf("first reconcile (finalizer add): %v", err)
	}
	if _, err := claimReconciler.Reconcile(ctx, claimReq); err != nil {
		t.Fatalf("second reconcile (full bind): %v", err)
	}

	var claim poolboyv1.ResourceClaim
	if err := c.Get(ctx, claimReq.NamespacedName, &claim); err != nil {
		t.Fatalf("fetching claim: %v", err)
	}
	if claim.Status.ResourceHandle == nil {
		t.Fatal("expected claim to be bound to a resource handle")
	}

	var h poolboyv1.ResourceHandle
	handleKey := types.NamespacedName{Namespace: claim.Status.ResourceHandle.Namespace, Name: claim.Status.ResourceHandle.Name}
	if err := c.Get(ctx, handleKey, &h); err != nil {
		t.Fatalf("fetching handle: %v", err)
	}
	if len(h.Spec.Resources) != 1 || h.Spec.Resources[0].Template == nil {
		t.Fatalf("expected handle to carry the provider's projected template, got %+v", h.Spec.Resources)
	}

	handleReconciler := &handle.Reconciler{Client: c, Scheme: scheme, Runtime: rt}
	if _, err := handleReconciler.Reconcile(ctx, ctrl.Request{NamespacedName: handleKey}); err != nil {
		t.Fatalf("handle reconcile: %v", err)
	}

	widgets, err := dyn.Resource(schema.GroupVersionResource{Group: "example.com", Version: "v1", Resource: "widgets"}).
		Namespace(h.Namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		t.Fatalf("listing widgets: %v", err)
	}
	if len(widgets.Items) != 1 {
		t.Fatalf("expected exactly one downstream Widget created, got %d", len(widgets.Items))
	}
	size, found, err := unstructuredNestedString(widgets.Items[0].Object, "spec", "size")
	if err != nil || !found {
		t.Fatalf("reading widget spec.size: found=%v err=%v", found, err)
	}
	if size != "large" {
		t.Fatalf("expected claim parameterValues to render into spec.size=large, got %q", size)
	}
}

func unstructuredNestedString(obj map[string]interface{}, fields ...string) (string, bool, error) {
	spec, ok := obj[fields[0]].(map[string]interface{})
	if !ok {
		return "", false, nil
	}
	v, ok := spec[fields[1]]
	if !ok {
		return "", false, nil
	}
	s, ok := v.(string)
	return s, ok, nil
}
